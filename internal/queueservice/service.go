package queueservice

import (
	"context"
	"errors"
	"time"

	"github.com/fyerfyer/blockq/queue"
)

var (
	// ErrQueueNotFound 表示请求的队列不存在
	ErrQueueNotFound = errors.New("queue not found")

	// ErrQueueExists 表示队列已存在
	ErrQueueExists = errors.New("queue already exists")

	// ErrInvalidName 表示队列名称为空
	ErrInvalidName = errors.New("queue name must not be empty")
)

// QueueOptions 表示创建队列时的选项
type QueueOptions struct {
	// 队列容量，0表示无界
	Capacity int
	// 阻塞入队的默认超时，0表示不超时
	PutTimeout time.Duration
	// 阻塞出队的默认超时，0表示不超时
	GetTimeout time.Duration
}

// WaitMode 描述一次入队或出队的等待方式
type WaitMode struct {
	// 为 false 时只尝试一次
	Block bool
	// 为 nil 时使用队列的默认超时
	Timeout *time.Duration
}

// Blocking 返回一直等待（或使用队列默认超时）的等待方式
func Blocking() WaitMode {
	return WaitMode{Block: true}
}

// NonBlocking 返回不等待的等待方式
func NonBlocking() WaitMode {
	return WaitMode{Block: false}
}

// WithTimeout 返回最多等待 d 的等待方式
func WithTimeout(d time.Duration) WaitMode {
	return WaitMode{Block: true, Timeout: &d}
}

func (m WaitMode) callOptions() []queue.CallOption {
	opts := []queue.CallOption{queue.Blocking(m.Block)}
	if m.Timeout != nil {
		opts = append(opts, queue.Timeout(*m.Timeout))
	}
	return opts
}

// QueueInfo 包含队列的基本信息
type QueueInfo struct {
	// 队列唯一标识
	ID string
	// 队列名称
	Name string
	// 队列状态
	Stats queue.Stats
}

// Service 定义队列服务接口
type Service interface {
	// CreateQueue 创建一个新队列
	CreateQueue(name string, opts QueueOptions) (QueueInfo, error)

	// GetQueue 获取指定名称的队列
	GetQueue(name string) (*queue.BlockingQueue[string], error)

	// ListQueues 按名称排序列出所有队列
	ListQueues() []QueueInfo

	// Put 向指定队列添加项目
	Put(ctx context.Context, queueName string, item string, mode WaitMode) error

	// Get 从指定队列获取项目
	Get(ctx context.Context, queueName string, mode WaitMode) (string, error)

	// QueueStats 获取队列统计信息
	QueueStats(queueName string) (queue.Stats, error)

	// DeleteQueue 删除队列
	DeleteQueue(queueName string) error

	// Close 删除所有队列
	Close() error
}
