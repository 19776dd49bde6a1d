// Package queue 提供线程安全的多生产者多消费者阻塞队列
//
// 队列可以是有界的（WithCapacity）或无界的。Put 和 Get 支持三种等待方式：
// 一直阻塞、带超时阻塞（Timeout）和非阻塞（NonBlocking）。阻塞中的调用
// 可以通过取消传入的 context 被中断，此时返回 ErrOperationCancelled，
// 队列状态与调用从未发生时完全一致。
package queue

import (
	"context"
)

// Queue 定义队列的基本操作接口
// 泛型参数T代表队列中存储的元素类型
type Queue[T any] interface {
	// Put 将元素添加到队列尾部
	// 有界队列已满时按调用选项等待；非阻塞或超时失败返回 ErrQueueFull，
	// 等待期间 ctx 被取消返回 ErrOperationCancelled，负超时返回 ErrInvalidTimeout
	Put(ctx context.Context, item T, opts ...CallOption) error

	// PutNowait 等价于 Put(ctx, item, NonBlocking())
	PutNowait(item T) error

	// Get 从队列头部移除并返回元素
	// 队列为空时按调用选项等待；非阻塞或超时失败返回 ErrQueueEmpty
	Get(ctx context.Context, opts ...CallOption) (T, error)

	// GetNowait 等价于 Get(ctx, NonBlocking())
	GetNowait() (T, error)

	// Qsize 返回队列当前元素数量的近似值
	Qsize() int

	// Empty 等价于 Qsize() == 0
	Empty() bool

	// Full 报告有界队列是否已满，无界队列总是 false
	Full() bool

	// Capacity 返回队列容量，0表示无界队列
	Capacity() int

	// Stats 返回队列的统计信息
	Stats() Stats
}

var _ Queue[int] = (*BlockingQueue[int])(nil)

// New 创建一个新的阻塞队列
func New[T any](options ...Option) (*BlockingQueue[T], error) {
	return NewBlockingQueue[T](options...)
}
