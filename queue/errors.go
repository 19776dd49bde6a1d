package queue

import (
	"errors"
	"fmt"
)

var (
	// ErrQueueFull 表示队列已满，非阻塞或超时的入队失败
	ErrQueueFull = errors.New("queue is full")

	// ErrQueueEmpty 表示队列为空，非阻塞或超时的出队失败
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrOperationCancelled 表示阻塞等待被外部中断
	ErrOperationCancelled = errors.New("operation cancelled")

	// ErrInvalidArgument 表示调用参数无效
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidCapacity 表示指定的队列容量无效
	ErrInvalidCapacity = fmt.Errorf("%w: negative capacity", ErrInvalidArgument)

	// ErrInvalidTimeout 表示指定的超时时间为负数
	ErrInvalidTimeout = fmt.Errorf("%w: negative timeout", ErrInvalidArgument)
)

// cancelled 把上下文的取消原因包装成 ErrOperationCancelled
func cancelled(cause error) error {
	if cause == nil {
		return ErrOperationCancelled
	}
	return fmt.Errorf("%w: %w", ErrOperationCancelled, cause)
}
