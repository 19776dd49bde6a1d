package queue

import "time"

type deadlineMode uint8

const (
	// 只检查一次，不等待
	deadlineImmediate deadlineMode = iota
	// 无限期等待
	deadlineNever
	// 等待到 at 为止
	deadlineAt
)

// deadline 把调用方给出的超时换算成绝对截止时间，每次被唤醒后重新计算剩余时长
type deadline struct {
	mode deadlineMode
	at   time.Time
}

// newDeadline 根据调用选项和队列默认超时计算截止时间
// 负超时在任何快速路径之前就被拒绝
func newDeadline(c callOptions, fallback time.Duration) (deadline, error) {
	if c.hasTimeout && c.timeout < 0 {
		return deadline{}, ErrInvalidTimeout
	}

	// 非阻塞调用忽略超时
	if !c.block {
		return deadline{mode: deadlineImmediate}, nil
	}

	timeout, bounded := c.timeout, c.hasTimeout
	if !bounded && fallback > 0 {
		timeout, bounded = fallback, true
	}

	switch {
	case !bounded:
		return deadline{mode: deadlineNever}, nil
	case timeout == 0:
		return deadline{mode: deadlineImmediate}, nil
	default:
		return deadline{mode: deadlineAt, at: time.Now().Add(timeout)}, nil
	}
}

// remaining 返回距离截止时间的剩余时长，无限期等待时第二个返回值为 false
func (d deadline) remaining() (time.Duration, bool) {
	switch d.mode {
	case deadlineNever:
		return 0, false
	case deadlineImmediate:
		return 0, true
	default:
		return time.Until(d.at), true
	}
}

// expired 报告是否已经不能再等待
func (d deadline) expired() bool {
	left, bounded := d.remaining()
	return bounded && left <= 0
}

// timer 为一次等待创建定时器，无限期等待时返回 nil 通道
func (d deadline) timer() (<-chan time.Time, func()) {
	left, bounded := d.remaining()
	if !bounded {
		return nil, func() {}
	}
	t := time.NewTimer(left)
	return t.C, func() { t.Stop() }
}
