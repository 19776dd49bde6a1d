package queue

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinel = -1

// consumeFunc 从队列取值直到遇到 sentinel，返回取到的所有值
type consumeFunc func(q *BlockingQueue[int]) ([]int, error)

func consumeBlocking(q *BlockingQueue[int]) ([]int, error) {
	var results []int
	for {
		val, err := q.Get(context.Background())
		if err != nil {
			return results, err
		}
		if val == sentinel {
			return results, nil
		}
		results = append(results, val)
	}
}

func consumeNonBlocking(q *BlockingQueue[int]) ([]int, error) {
	var results []int
	for {
		val, err := q.Get(context.Background(), NonBlocking())
		if errors.Is(err, ErrQueueEmpty) {
			time.Sleep(10 * time.Microsecond)
			continue
		}
		if err != nil {
			return results, err
		}
		if val == sentinel {
			return results, nil
		}
		results = append(results, val)
	}
}

func consumeTimeout(q *BlockingQueue[int]) ([]int, error) {
	var results []int
	for {
		val, err := q.Get(context.Background(), Timeout(10*time.Microsecond))
		if errors.Is(err, ErrQueueEmpty) {
			continue
		}
		if err != nil {
			return results, err
		}
		if val == sentinel {
			return results, nil
		}
		results = append(results, val)
	}
}

// runThreads 启动 feeders 个生产者分摊 inputs，consumers 个消费者并发取值。
// 所有生产者结束后再为每个消费者放入一个 sentinel。
func runThreads(t *testing.T, q *BlockingQueue[int], feeders, consumers int, inputs []int, consume consumeFunc) []int {
	t.Helper()

	var (
		seqMu sync.Mutex
		next  int
	)
	take := func() (int, bool) {
		seqMu.Lock()
		defer seqMu.Unlock()
		if next == len(inputs) {
			return 0, false
		}
		v := inputs[next]
		next++
		return v, true
	}

	var (
		resultsMu sync.Mutex
		results   []int
		errs      []error
	)

	var consumerWG sync.WaitGroup
	for i := 0; i < consumers; i++ {
		consumerWG.Add(1)
		go func() {
			defer consumerWG.Done()
			got, err := consume(q)
			resultsMu.Lock()
			results = append(results, got...)
			if err != nil {
				errs = append(errs, err)
			}
			resultsMu.Unlock()
		}()
	}

	var feederWG sync.WaitGroup
	for i := 0; i < feeders; i++ {
		feederWG.Add(1)
		go func(seed int64) {
			defer feederWG.Done()
			rnd := rand.New(rand.NewSource(seed))
			for {
				v, ok := take()
				if !ok {
					return
				}
				if err := q.Put(context.Background(), v); err != nil {
					resultsMu.Lock()
					errs = append(errs, err)
					resultsMu.Unlock()
					return
				}
				if rnd.Float64() > 0.5 {
					time.Sleep(time.Duration(rnd.Float64() * float64(time.Millisecond)))
				}
			}
		}(int64(42 + i))
	}

	feederWG.Wait()
	for i := 0; i < consumers; i++ {
		require.NoError(t, q.Put(context.Background(), sentinel))
	}
	consumerWG.Wait()

	require.Empty(t, errs)
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Qsize())
	return results
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestBlockingQueue_OrderSingleProducerSingleConsumer(t *testing.T) {
	q, err := New[int]()
	require.NoError(t, err)

	inputs := sequence(100)
	results := runThreads(t, q, 1, 1, inputs, consumeBlocking)

	// 单生产者单消费者时顺序完全确定
	assert.Equal(t, inputs, results)
}

func TestBlockingQueue_ManyThreads(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		items    int
		consume  consumeFunc
	}{
		{"blocking", 0, 10000, consumeBlocking},
		{"non_blocking", 0, 10000, consumeNonBlocking},
		{"timeout", 0, 1000, consumeTimeout},
		{"bounded_blocking", 16, 10000, consumeBlocking},
		{"bounded_timeout", 16, 1000, consumeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New[int](WithCapacity(tt.capacity))
			require.NoError(t, err)

			const n = 50
			inputs := sequence(tt.items)
			results := runThreads(t, q, n, n, inputs, tt.consume)

			// 多个消费者的结果顺序不确定，排序后必须与输入一致
			sort.Ints(results)
			assert.Equal(t, inputs, results)
		})
	}
}

func TestBlockingQueue_PerProducerOrder(t *testing.T) {
	q, err := New[[2]int](WithCapacity(8))
	require.NoError(t, err)

	const producers, perProducer = 8, 500
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				assert.NoError(t, q.Put(context.Background(), [2]int{p, i}))
			}
		}(p)
	}

	// 单个消费者看到的每个生产者的序号必须严格递增
	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	for i := 0; i < producers*perProducer; i++ {
		v, err := q.Get(context.Background())
		require.NoError(t, err)
		require.Greater(t, v[1], last[v[0]], "producer %d out of order", v[0])
		last[v[0]] = v[1]
	}
	wg.Wait()
}

func TestBlockingQueue_Backpressure(t *testing.T) {
	const capacity, producers, perProducer = 10, 100, 100

	q, err := New[int](WithCapacity(capacity))
	require.NoError(t, err)

	var completed atomic.Int64
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Put(context.Background(), i); err != nil {
					t.Errorf("Put failed: %v", err)
					return
				}
				completed.Add(1)
			}
		}()
	}

	// 没有消费者时所有生产者最终都挂起，只完成 capacity 次入队
	require.Eventually(t, func() bool {
		return q.Stats().WaitingProducers == producers
	}, 5*time.Second, time.Millisecond)
	assert.EqualValues(t, capacity, completed.Load())
	assert.Equal(t, capacity, q.Qsize())

	for k := 1; k <= producers*perProducer; k++ {
		_, err := q.Get(context.Background())
		require.NoError(t, err)
		require.LessOrEqual(t, completed.Load(), int64(capacity+k))
		require.LessOrEqual(t, q.Qsize(), capacity)
	}

	wg.Wait()
	assert.EqualValues(t, producers*perProducer, completed.Load())
	assert.True(t, q.Empty())
}

func TestBlockingQueue_ReentrantPutFromListener(t *testing.T) {
	const n = 10000

	gen := 0
	next := func() int {
		v := gen
		gen++
		return v
	}

	var q *BlockingQueue[int]
	gets := 0
	listener := func(evt Event) {
		if evt.Type != EventGet {
			return
		}
		// 模拟出队时触发的回调再次入队
		gets++
		if gets%3 == 0 {
			require.NoError(t, q.Put(context.Background(), next()))
		}
	}

	var err error
	q, err = New[int](WithEventListener(listener))
	require.NoError(t, err)

	var results []int
	for {
		require.NoError(t, q.Put(context.Background(), next()))
		v, err := q.Get(context.Background())
		require.NoError(t, err)
		results = append(results, v)
		if v >= n {
			break
		}
	}

	// 所有值都在同一个 goroutine 里按计数器顺序产生，FIFO 保证结果正好是 0..n
	assert.Equal(t, sequence(n+1), results)
}

func TestBlockingQueue_ReentrantGetFromListener(t *testing.T) {
	var q *BlockingQueue[int]
	var drained []int
	listener := func(evt Event) {
		if evt.Type != EventFull {
			return
		}
		// 队列变满时在回调里腾出一个位置
		v, err := q.GetNowait()
		require.NoError(t, err)
		drained = append(drained, v)
	}

	var err error
	q, err = New[int](WithCapacity(2), WithEventListener(listener))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, q.PutNowait(i))
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, drained)
	assert.Equal(t, 1, q.Qsize())
}

type tracked struct {
	payload [64]byte
}

func TestBlockingQueue_ReleasesReferences(t *testing.T) {
	const n = 20

	q, err := New[*tracked]()
	require.NoError(t, err)

	var finalized atomic.Int64
	for i := 0; i < n; i++ {
		obj := &tracked{}
		runtime.SetFinalizer(obj, func(*tracked) { finalized.Add(1) })
		require.NoError(t, q.PutNowait(obj))
	}

	for i := 0; i < n; i++ {
		_, err := q.GetNowait()
		require.NoError(t, err)
	}

	// 出队后队列不再持有元素，垃圾回收后终结器全部执行
	require.Eventually(t, func() bool {
		runtime.GC()
		return finalized.Load() == n
	}, 5*time.Second, 10*time.Millisecond)
}

func TestBlockingQueue_SubMillisecondTimeouts(t *testing.T) {
	q, err := New[int](WithCapacity(1))
	require.NoError(t, err)
	require.NoError(t, q.PutNowait(1))

	start := time.Now()
	for i := 0; i < 200; i++ {
		assert.ErrorIs(t, q.Put(context.Background(), 2, Timeout(50*time.Microsecond)), ErrQueueFull)
	}
	assert.Less(t, time.Since(start), 5*time.Second)

	stats := q.Stats()
	assert.EqualValues(t, 200, stats.PutTimeouts)
	assert.Equal(t, 0, stats.WaitingProducers)
	assert.Equal(t, 1, q.Qsize())
}
