package queue

import (
	"time"

	"github.com/rs/zerolog"
)

// Options 定义队列的配置选项
type Options struct {
	// 队列最大容量，0表示无界队列
	Capacity int

	// 阻塞入队未指定超时时使用的默认超时，0表示永不超时
	PutTimeout time.Duration

	// 阻塞出队未指定超时时使用的默认超时，0表示永不超时
	GetTimeout time.Duration

	// 事件监听器列表
	EventListeners []EventListener

	// 日志记录器，默认不输出
	Logger zerolog.Logger
}

// Option 函数类型用于设置队列选项
type Option func(*Options)

// DefaultOptions 返回默认的队列选项
func DefaultOptions() *Options {
	return &Options{
		Capacity:       0, // 默认无界队列
		PutTimeout:     0,
		GetTimeout:     0,
		EventListeners: nil,
		Logger:         zerolog.Nop(),
	}
}

// validate 检查选项组合是否合法
func (o *Options) validate() error {
	if o.Capacity < 0 {
		return ErrInvalidCapacity
	}
	if o.PutTimeout < 0 || o.GetTimeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// WithCapacity 设置队列容量，负数会让 New 返回 ErrInvalidCapacity
func WithCapacity(capacity int) Option {
	return func(o *Options) {
		o.Capacity = capacity
	}
}

// WithPutTimeout 设置阻塞入队的默认超时
func WithPutTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.PutTimeout = timeout
	}
}

// WithGetTimeout 设置阻塞出队的默认超时
func WithGetTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.GetTimeout = timeout
	}
}

// WithEventListener 添加事件监听器
func WithEventListener(listener EventListener) Option {
	return func(o *Options) {
		o.EventListeners = append(o.EventListeners, listener)
	}
}

// WithEventListeners 设置事件监听器列表
func WithEventListeners(listeners []EventListener) Option {
	return func(o *Options) {
		o.EventListeners = listeners
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// CallOption 调整单次 Put/Get 调用的等待方式
type CallOption func(*callOptions)

type callOptions struct {
	block      bool
	timeout    time.Duration
	hasTimeout bool
}

// NonBlocking 让调用只检查一次条件，不进入等待
func NonBlocking() CallOption {
	return func(c *callOptions) {
		c.block = false
	}
}

// Blocking 显式指定是否阻塞，false 等价于 NonBlocking
func Blocking(block bool) CallOption {
	return func(c *callOptions) {
		c.block = block
	}
}

// Timeout 设置本次调用最多等待的时长
// 0 与 NonBlocking 等价，负数会返回 ErrInvalidTimeout
func Timeout(d time.Duration) CallOption {
	return func(c *callOptions) {
		c.timeout = d
		c.hasTimeout = true
	}
}

func newCallOptions(opts []CallOption) callOptions {
	c := callOptions{block: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
