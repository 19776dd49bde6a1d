package queue

import "time"

// Stats 表示队列的统计信息
type Stats struct {
	// 创建时间
	CreatedAt time.Time

	// 队列容量，0表示无界
	Capacity int

	// 当前元素数量
	Size int

	// 成功入队次数
	Puts uint64

	// 成功出队次数
	Gets uint64

	// 入队进入等待的次数
	PutBlocks uint64

	// 出队进入等待的次数
	GetBlocks uint64

	// 入队超时次数
	PutTimeouts uint64

	// 出队超时次数
	GetTimeouts uint64

	// 等待被中断的次数
	Cancellations uint64

	// 非阻塞调用因满或空被拒绝的次数
	Rejected uint64

	// 当前挂起的生产者和消费者数量
	WaitingProducers int
	WaitingConsumers int
}

// IsEmpty 返回队列是否为空
func (s *Stats) IsEmpty() bool {
	return s.Size == 0
}

// IsFull 返回队列是否已满
func (s *Stats) IsFull() bool {
	return s.Capacity > 0 && s.Size >= s.Capacity
}

// Utilization 返回队列利用率，范围从0到1
// 无界队列总是返回0
func (s *Stats) Utilization() float64 {
	if s.Capacity <= 0 {
		return 0
	}
	return float64(s.Size) / float64(s.Capacity)
}
