package queueservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/fyerfyer/blockq/queue"
)

// 同一个队列的背压告警最多每隔这么久输出一次
const backpressureLogInterval = 5 * time.Second

// InMemoryService 实现了Service接口的内存存储版本
type InMemoryService struct {
	// 队列名称到队列实例的映射
	queues map[string]*queueEntry
	// 保护映射的互斥锁
	mu sync.RWMutex

	logger zerolog.Logger
}

// queueEntry 包含队列及其元数据
type queueEntry struct {
	id string
	q  *queue.BlockingQueue[string]
	// 限制满/空告警的输出频率
	fullWarn  *rate.Sometimes
	emptyWarn *rate.Sometimes
}

var _ Service = (*InMemoryService)(nil)

// NewInMemoryService 创建一个新的内存队列服务
func NewInMemoryService(logger zerolog.Logger) *InMemoryService {
	return &InMemoryService{
		queues: make(map[string]*queueEntry),
		logger: logger.With().Str("component", "queueservice").Logger(),
	}
}

// CreateQueue 创建一个新队列
func (s *InMemoryService) CreateQueue(name string, opts QueueOptions) (QueueInfo, error) {
	if name == "" {
		return QueueInfo{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.queues[name]; exists {
		return QueueInfo{}, ErrQueueExists
	}

	q, err := queue.New[string](
		queue.WithCapacity(opts.Capacity),
		queue.WithPutTimeout(opts.PutTimeout),
		queue.WithGetTimeout(opts.GetTimeout),
		queue.WithLogger(s.logger.With().Str("queue", name).Logger()),
	)
	if err != nil {
		return QueueInfo{}, fmt.Errorf("create queue %q: %w", name, err)
	}

	entry := &queueEntry{
		id:        uuid.New().String(),
		q:         q,
		fullWarn:  &rate.Sometimes{Interval: backpressureLogInterval},
		emptyWarn: &rate.Sometimes{Interval: backpressureLogInterval},
	}
	s.queues[name] = entry

	s.logger.Info().
		Str("queue", name).
		Str("id", entry.id).
		Int("capacity", opts.Capacity).
		Msg("queue created")

	return QueueInfo{ID: entry.id, Name: name, Stats: q.Stats()}, nil
}

// GetQueue 获取指定名称的队列
func (s *InMemoryService) GetQueue(name string) (*queue.BlockingQueue[string], error) {
	entry, err := s.entry(name)
	if err != nil {
		return nil, err
	}
	return entry.q, nil
}

func (s *InMemoryService) entry(name string) (*queueEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.queues[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrQueueNotFound, name)
	}
	return entry, nil
}

// ListQueues 列出所有队列
func (s *InMemoryService) ListQueues() []QueueInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]QueueInfo, 0, len(s.queues))
	for name, entry := range s.queues {
		result = append(result, QueueInfo{
			ID:    entry.id,
			Name:  name,
			Stats: entry.q.Stats(),
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Put 向指定队列添加项目
// 服务的读锁只在查找队列时持有，等待期间不会阻塞其他队列的操作
func (s *InMemoryService) Put(ctx context.Context, queueName string, item string, mode WaitMode) error {
	entry, err := s.entry(queueName)
	if err != nil {
		return err
	}

	err = entry.q.Put(ctx, item, mode.callOptions()...)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, queue.ErrQueueFull):
		entry.fullWarn.Do(func() {
			s.logger.Warn().
				Str("queue", queueName).
				Int("capacity", entry.q.Capacity()).
				Msg("queue is full, producers are being turned away")
		})
	case errors.Is(err, queue.ErrOperationCancelled):
		s.logger.Info().Str("queue", queueName).Err(err).Msg("put interrupted")
	}
	return err
}

// Get 从指定队列获取项目
func (s *InMemoryService) Get(ctx context.Context, queueName string, mode WaitMode) (string, error) {
	entry, err := s.entry(queueName)
	if err != nil {
		return "", err
	}

	item, err := entry.q.Get(ctx, mode.callOptions()...)
	switch {
	case err == nil:
		return item, nil
	case errors.Is(err, queue.ErrQueueEmpty):
		entry.emptyWarn.Do(func() {
			s.logger.Debug().Str("queue", queueName).Msg("queue is empty")
		})
	case errors.Is(err, queue.ErrOperationCancelled):
		s.logger.Info().Str("queue", queueName).Err(err).Msg("get interrupted")
	}
	return "", err
}

// QueueStats 获取队列统计信息
func (s *InMemoryService) QueueStats(queueName string) (queue.Stats, error) {
	entry, err := s.entry(queueName)
	if err != nil {
		return queue.Stats{}, err
	}
	return entry.q.Stats(), nil
}

// DeleteQueue 删除队列
// 队列没有关闭操作，仍在等待的调用方需要通过自己的 context 退出
func (s *InMemoryService) DeleteQueue(queueName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.queues[queueName]
	if !exists {
		return fmt.Errorf("%w: %s", ErrQueueNotFound, queueName)
	}

	delete(s.queues, queueName)
	s.logger.Info().
		Str("queue", queueName).
		Str("id", entry.id).
		Int("dropped", entry.q.Qsize()).
		Msg("queue deleted")

	return nil
}

// Close 删除所有队列
func (s *InMemoryService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queues = make(map[string]*queueEntry)
	return nil
}
