// Package loadgen 用一组生产者和消费者协程模拟服务中某个队列上的流量，
// 用于观察有界队列的背压和各种等待方式的行为。
package loadgen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/fyerfyer/blockq/internal/queueservice"
	"github.com/fyerfyer/blockq/queue"
)

// 非阻塞消费者在队列为空时的重试间隔
const retryInterval = time.Millisecond

// Generator 管理一组生产者和消费者协程
type Generator struct {
	config  Config
	svc     queueservice.Service
	metrics *counters
	logger  zerolog.Logger

	// 已经有结果的元素数：成功出队或入队失败
	settled atomic.Int64
}

// New 创建一个新的负载生成器
func New(svc queueservice.Service, options ...Option) *Generator {
	// 加载默认配置
	config := DefaultConfig()

	// 应用选项
	for _, option := range options {
		option(&config)
	}

	return &Generator{
		config:  config,
		svc:     svc,
		metrics: &counters{},
		logger:  config.logger.With().Str("component", "loadgen").Logger(),
	}
}

// Total 返回本次运行计划写入的元素总数
func (g *Generator) Total() int {
	return g.config.producers * g.config.itemsPerProducer
}

// Run 启动生产者和消费者，直到每个元素都被消费或丢弃，或者 ctx 被取消
// ctx 被取消时返回已经收集到的指标和取消原因
func (g *Generator) Run(ctx context.Context, queueName string) (Metrics, error) {
	if _, err := g.svc.GetQueue(queueName); err != nil {
		return Metrics{}, err
	}
	for _, mode := range []queueservice.WaitMode{g.config.putMode, g.config.getMode} {
		if mode.Timeout != nil && *mode.Timeout < 0 {
			return Metrics{}, fmt.Errorf("%w: %v", queue.ErrInvalidTimeout, *mode.Timeout)
		}
	}

	// 同一个 Generator 可以重复运行，但不能并发运行
	g.metrics = &counters{}
	g.settled.Store(0)

	runID := uuid.New().String()[:8]
	total := int64(g.Total())
	start := time.Now()

	// 所有元素都有结果后停止消费者
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var limiter *rate.Limiter
	if g.config.rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(g.config.rate), 1)
	}

	settle := func() {
		if g.settled.Add(1) == total {
			stop()
		}
	}

	g.logger.Info().
		Str("run", runID).
		Str("queue", queueName).
		Int("producers", g.config.producers).
		Int("consumers", g.config.consumers).
		Int64("items", total).
		Msg("load run started")

	var wg sync.WaitGroup
	for p := 0; p < g.config.producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			g.produce(runCtx, queueName, fmt.Sprintf("%s-p%d", runID, id), limiter, settle)
		}(p)
	}

	for c := 0; c < g.config.consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.consume(runCtx, queueName, settle)
		}()
	}

	wg.Wait()
	g.metrics.finish(time.Since(start))
	snap := g.metrics.snapshot()

	g.logger.Info().
		Str("run", runID).
		Uint64("produced", snap.Produced).
		Uint64("consumed", snap.Consumed).
		Uint64("dropped", snap.PutFailures).
		Dur("elapsed", snap.Elapsed).
		Msg("load run finished")

	if ctx.Err() != nil {
		return snap, context.Cause(ctx)
	}
	return snap, nil
}

// produce 写入 itemsPerProducer 个元素，入队失败的元素直接丢弃
func (g *Generator) produce(ctx context.Context, queueName, prefix string, limiter *rate.Limiter, settle func()) {
	for seq := 0; seq < g.config.itemsPerProducer; seq++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}

		begin := time.Now()
		err := g.svc.Put(ctx, queueName, fmt.Sprintf("%s-%d", prefix, seq), g.config.putMode)
		if errors.Is(err, queue.ErrOperationCancelled) || errors.Is(err, queueservice.ErrQueueNotFound) {
			return
		}

		g.metrics.putDone(time.Since(begin), err == nil)
		if err != nil {
			settle()
		}
	}
}

// consume 不断出队直到 ctx 被取消
func (g *Generator) consume(ctx context.Context, queueName string, settle func()) {
	for {
		begin := time.Now()
		_, err := g.svc.Get(ctx, queueName, g.config.getMode)

		switch {
		case err == nil:
			g.metrics.getDone(time.Since(begin), true)
			settle()
			continue
		case errors.Is(err, queue.ErrOperationCancelled), errors.Is(err, queueservice.ErrQueueNotFound):
			return
		}

		g.metrics.getDone(time.Since(begin), false)

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryInterval):
		}
	}
}
