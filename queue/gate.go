package queue

// gate 记录有界队列的空闲槽位，capacity 为 0 时不做任何限制
// 与 store 一样由 BlockingQueue.mu 保护，任意时刻 free == capacity - size
type gate struct {
	capacity int
	free     int
}

func newGate(capacity int) gate {
	return gate{capacity: capacity, free: capacity}
}

func (g *gate) bounded() bool {
	return g.capacity > 0
}

// tryAcquire 尝试占用一个槽位
func (g *gate) tryAcquire() bool {
	if !g.bounded() {
		return true
	}
	if g.free == 0 {
		return false
	}
	g.free--
	return true
}

// release 归还一个槽位，每移除一个元素调用一次
func (g *gate) release() {
	if !g.bounded() {
		return
	}
	if g.free == g.capacity {
		panic("queue: capacity slot released twice")
	}
	g.free++
}

func (g *gate) full() bool {
	return g.bounded() && g.free == 0
}
