package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// BlockingQueue 是Queue接口的具体实现
//
// 一把互斥锁同时保护元素存储和容量槽位，检查条件与修改状态总在
// 同一个临界区内完成。事件监听器和日志都在锁释放后调用。
type BlockingQueue[T any] struct {
	// 队列选项
	opts *Options

	// 保护 items、slots、条件变量和 stats
	mu sync.Mutex

	// 元素存储
	items *store[T]

	// 容量槽位
	slots gate

	// 队列不为空条件，Get 在此等待
	notEmpty *condition

	// 队列不为满条件，Put 在此等待
	notFull *condition

	// 事件发射器
	events *EventEmitter

	logger zerolog.Logger

	// 统计信息
	stats Stats
}

// op 区分入队和出队，用于统计和日志
type op uint8

const (
	opPut op = iota
	opGet
)

func (o op) String() string {
	if o == opPut {
		return "put"
	}
	return "get"
}

// awaitOutcome 是等待条件成立的最终结果
type awaitOutcome uint8

const (
	awaitReady awaitOutcome = iota
	awaitRejected
	awaitTimedOut
	awaitCancelled
)

// NewBlockingQueue 创建一个新的阻塞队列实例
func NewBlockingQueue[T any](options ...Option) (*BlockingQueue[T], error) {
	opts := DefaultOptions()
	for _, opt := range options {
		opt(opts)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	q := &BlockingQueue[T]{
		opts:   opts,
		items:  newStore[T](opts.Capacity),
		slots:  newGate(opts.Capacity),
		events: NewEventEmitter(opts.EventListeners),
		logger: opts.Logger.With().Str("component", "queue").Logger(),
		stats:  Stats{CreatedAt: time.Now(), Capacity: opts.Capacity},
	}

	q.notEmpty = newCondition(&q.mu)
	q.notFull = newCondition(&q.mu)

	return q, nil
}

// Put 将元素添加到队列尾部，有界队列已满时按调用选项等待空位
func (q *BlockingQueue[T]) Put(ctx context.Context, item T, opts ...CallOption) error {
	d, err := newDeadline(newCallOptions(opts), q.opts.PutTimeout)
	if err != nil {
		q.report(opPut, err)
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	q.mu.Lock()

	outcome, blocked := await(ctx, q.notFull, d, q.slots.tryAcquire)
	if blocked {
		q.stats.PutBlocks++
	}
	if outcome != awaitReady {
		err := q.fail(ctx, opPut, outcome)
		q.mu.Unlock()
		q.report(opPut, err)
		return err
	}

	q.items.push(item)
	q.stats.Puts++
	size := q.items.len()
	full := q.slots.full()

	// 只唤醒一个消费者
	q.notEmpty.signal()

	q.mu.Unlock()

	q.events.Emit(Event{Type: EventPut, Item: item, Size: size})
	if full {
		q.events.Emit(Event{Type: EventFull, Size: size})
	}
	return nil
}

// PutNowait 尝试将元素添加到队列，但不阻塞等待
func (q *BlockingQueue[T]) PutNowait(item T) error {
	return q.Put(context.Background(), item, NonBlocking())
}

// Get 从队列头部获取元素，队列为空时按调用选项等待
func (q *BlockingQueue[T]) Get(ctx context.Context, opts ...CallOption) (T, error) {
	var zero T

	d, err := newDeadline(newCallOptions(opts), q.opts.GetTimeout)
	if err != nil {
		q.report(opGet, err)
		return zero, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	q.mu.Lock()

	outcome, blocked := await(ctx, q.notEmpty, d, q.hasItems)
	if blocked {
		q.stats.GetBlocks++
	}
	if outcome != awaitReady {
		err := q.fail(ctx, opGet, outcome)
		q.mu.Unlock()
		q.report(opGet, err)
		return zero, err
	}

	item := q.items.pop()
	q.slots.release()
	q.stats.Gets++
	size := q.items.len()

	// 只唤醒一个生产者
	q.notFull.signal()

	q.mu.Unlock()

	q.events.Emit(Event{Type: EventGet, Item: item, Size: size})
	if size == 0 {
		q.events.Emit(Event{Type: EventEmpty})
	}
	return item, nil
}

// GetNowait 尝试从队列获取元素，但不阻塞等待
func (q *BlockingQueue[T]) GetNowait() (T, error) {
	return q.Get(context.Background(), NonBlocking())
}

// Qsize 返回队列当前元素数量
// 读取不加锁，并发修改时结果可能在返回前就已过期
func (q *BlockingQueue[T]) Qsize() int {
	return q.items.snapshot()
}

// Empty 检查队列是否为空，与 Qsize 一样是近似值
func (q *BlockingQueue[T]) Empty() bool {
	return q.Qsize() == 0
}

// Full 检查有界队列是否已满，与 Qsize 一样是近似值
func (q *BlockingQueue[T]) Full() bool {
	return q.opts.Capacity > 0 && q.Qsize() >= q.opts.Capacity
}

// Capacity 返回队列容量
func (q *BlockingQueue[T]) Capacity() int {
	return q.opts.Capacity
}

// Stats 返回队列的统计信息
func (q *BlockingQueue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	statsCopy := q.stats
	statsCopy.Size = q.items.len()
	statsCopy.WaitingProducers = q.notFull.waiting()
	statsCopy.WaitingConsumers = q.notEmpty.waiting()
	return statsCopy
}

// hasItems 是 Get 的等待条件，调用时持有 q.mu
func (q *BlockingQueue[T]) hasItems() bool {
	return q.items.len() > 0
}

// await 在持有锁的情况下等待 ready 成立
// ready 可能带有副作用（占用槽位），因此每轮只调用一次
func await(ctx context.Context, c *condition, d deadline, ready func() bool) (outcome awaitOutcome, blocked bool) {
	timedOut := false
	for {
		if ready() {
			return awaitReady, blocked
		}
		if d.mode == deadlineImmediate {
			return awaitRejected, blocked
		}
		if timedOut || d.expired() {
			return awaitTimedOut, blocked
		}

		blocked = true
		switch c.wait(ctx, d) {
		case waitCancelled:
			return awaitCancelled, blocked
		case waitTimedOut:
			// 超时后还要再检查一次条件
			timedOut = true
		}
	}
}

// fail 记录失败的统计并生成返回给调用方的错误，调用时持有 q.mu
func (q *BlockingQueue[T]) fail(ctx context.Context, o op, outcome awaitOutcome) error {
	unavailable := ErrQueueEmpty
	if o == opPut {
		unavailable = ErrQueueFull
	}

	switch outcome {
	case awaitCancelled:
		q.stats.Cancellations++
		return cancelled(context.Cause(ctx))
	case awaitTimedOut:
		if o == opPut {
			q.stats.PutTimeouts++
		} else {
			q.stats.GetTimeouts++
		}
	default:
		q.stats.Rejected++
	}
	return unavailable
}

// report 在锁外记录日志并发送错误事件
func (q *BlockingQueue[T]) report(o op, err error) {
	var evt *zerolog.Event
	if errors.Is(err, ErrOperationCancelled) || errors.Is(err, ErrInvalidArgument) {
		evt = q.logger.Debug()
	} else {
		evt = q.logger.Trace()
	}
	evt.Str("op", o.String()).Int("size", q.Qsize()).Err(err).Msg("queue operation failed")

	q.events.Emit(Event{Type: EventError, Err: err, Size: q.Qsize()})
}
