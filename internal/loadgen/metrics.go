package loadgen

import (
	"sync/atomic"
	"time"
)

// Metrics 包含一次模拟运行的指标快照
type Metrics struct {
	// 元素相关指标
	Produced    uint64 // 成功入队数
	Consumed    uint64 // 成功出队数
	PutFailures uint64 // 入队失败（满或超时）被丢弃的元素数
	GetFailures uint64 // 出队失败（空或超时）次数

	// 平均每次调用耗时，包括挂起等待的时间
	AvgPutLatency time.Duration
	AvgGetLatency time.Duration

	// 整次运行耗时
	Elapsed time.Duration
}

// counters 在运行期间被各协程并发更新
type counters struct {
	produced    atomic.Uint64
	consumed    atomic.Uint64
	putFailures atomic.Uint64
	getFailures atomic.Uint64

	putLatency atomic.Int64
	getLatency atomic.Int64
	elapsed    atomic.Int64
}

// putDone 记录一次入队
func (c *counters) putDone(latency time.Duration, ok bool) {
	if ok {
		c.produced.Add(1)
	} else {
		c.putFailures.Add(1)
	}
	c.putLatency.Add(int64(latency))
}

// getDone 记录一次出队
func (c *counters) getDone(latency time.Duration, ok bool) {
	if ok {
		c.consumed.Add(1)
	} else {
		c.getFailures.Add(1)
	}
	c.getLatency.Add(int64(latency))
}

func (c *counters) finish(elapsed time.Duration) {
	c.elapsed.Store(int64(elapsed))
}

// snapshot 返回当前指标的快照
func (c *counters) snapshot() Metrics {
	m := Metrics{
		Produced:    c.produced.Load(),
		Consumed:    c.consumed.Load(),
		PutFailures: c.putFailures.Load(),
		GetFailures: c.getFailures.Load(),
		Elapsed:     time.Duration(c.elapsed.Load()),
	}

	if puts := m.Produced + m.PutFailures; puts > 0 {
		m.AvgPutLatency = time.Duration(c.putLatency.Load() / int64(puts))
	}
	if gets := m.Consumed + m.GetFailures; gets > 0 {
		m.AvgGetLatency = time.Duration(c.getLatency.Load() / int64(gets))
	}
	return m
}
