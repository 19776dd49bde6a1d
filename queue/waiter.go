package queue

import (
	"container/list"
	"context"
	"sync"
)

// waitResult 是一次挂起结束的原因
type waitResult uint8

const (
	// 被 signal 唤醒，条件需要调用方自己重新检查
	waitWoken waitResult = iota
	// 截止时间已到
	waitTimedOut
	// 上下文被取消
	waitCancelled
)

// waiter 是一个挂起中的调用方，ready 只会被写入一次
type waiter struct {
	ready chan struct{}
}

// condition 是一个可超时、可取消的条件变量
//
// sync.Cond 的 Wait 无法设置超时，也无法被 context 打断，
// 所以这里为每个等待者分配一个单元素通道，按登记顺序排队。
// 所有方法都要求调用方持有 mu。
type condition struct {
	mu      *sync.Mutex
	waiters *list.List
}

func newCondition(mu *sync.Mutex) *condition {
	return &condition{mu: mu, waiters: list.New()}
}

// wait 登记为等待者，释放 mu 挂起，返回前重新获得 mu
func (c *condition) wait(ctx context.Context, d deadline) waitResult {
	w := &waiter{ready: make(chan struct{}, 1)}
	elem := c.waiters.PushBack(w)

	timerC, stop := d.timer()
	defer stop()

	c.mu.Unlock()

	result := waitWoken
	select {
	case <-w.ready:
	case <-timerC:
		result = waitTimedOut
	case <-ctx.Done():
		result = waitCancelled
	}

	c.mu.Lock()

	if result != waitWoken && !c.remove(elem) {
		// 离开前已经被选中唤醒，把这次唤醒转交给下一个等待者
		c.signal()
	}
	return result
}

// remove 把仍在队列中的等待者移除，已被 signal 取走时返回 false
func (c *condition) remove(elem *list.Element) bool {
	if elem.Value == nil {
		return false
	}
	c.waiters.Remove(elem)
	elem.Value = nil
	return true
}

// signal 最多唤醒一个等待者，没有等待者时什么也不做
func (c *condition) signal() {
	front := c.waiters.Front()
	if front == nil {
		return
	}
	w := front.Value.(*waiter)
	c.waiters.Remove(front)
	front.Value = nil
	w.ready <- struct{}{}
}

// waiting 返回当前挂起的等待者数量
func (c *condition) waiting() int {
	return c.waiters.Len()
}
