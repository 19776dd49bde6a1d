package queue

import "sync/atomic"

// 缓冲区的初始槽位数，有界队列按需扩容到容量为止
const initialStoreSize = 16

// store 是环形缓冲区实现的FIFO元素存储
// 本身不加锁，所有修改都在 BlockingQueue.mu 保护下进行；
// count 额外用原子变量维护，供 Qsize 无锁读取
type store[T any] struct {
	data  []T
	head  int
	tail  int
	size  int
	count atomic.Int64
	// 缓冲区长度上限，0表示无界
	limit int
}

func newStore[T any](capacity int) *store[T] {
	n := initialStoreSize
	if capacity > 0 && capacity < n {
		n = capacity
	}
	return &store[T]{data: make([]T, n), limit: capacity}
}

// push 把元素追加到尾部，缓冲区满时扩容
func (s *store[T]) push(item T) {
	if s.size == len(s.data) {
		s.grow()
	}
	s.data[s.tail] = item
	s.tail = (s.tail + 1) % len(s.data)
	s.size++
	s.count.Store(int64(s.size))
}

// pop 移除并返回头部元素
// 调用方必须在同一临界区内确认过非空
func (s *store[T]) pop() T {
	if s.size == 0 {
		panic("queue: pop from empty store")
	}
	var zero T
	item := s.data[s.head]
	// 清空引用，出队后队列不再持有该元素
	s.data[s.head] = zero
	s.head = (s.head + 1) % len(s.data)
	s.size--
	s.count.Store(int64(s.size))
	return item
}

func (s *store[T]) len() int {
	return s.size
}

// snapshot 返回不加锁的近似长度
func (s *store[T]) snapshot() int {
	return int(s.count.Load())
}

// grow 翻倍扩容并把元素按顺序搬到新数组开头，有界时不超过 limit
func (s *store[T]) grow() {
	oldCap := len(s.data)
	newCap := oldCap * 2
	if s.limit > 0 && (newCap > s.limit || newCap < oldCap) {
		newCap = s.limit
	}
	if newCap <= oldCap {
		panic("queue: store grown past its capacity")
	}
	newData := make([]T, newCap)
	for i := 0; i < s.size; i++ {
		newData[i] = s.data[(s.head+i)%oldCap]
	}
	s.head = 0
	s.tail = s.size
	s.data = newData
}
