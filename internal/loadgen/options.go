package loadgen

import (
	"github.com/rs/zerolog"

	"github.com/fyerfyer/blockq/internal/queueservice"
)

// Option 是用于配置负载生成器的函数选项
type Option func(*Config)

// Config 包含负载生成器的所有配置选项
type Config struct {
	// 生产者和消费者协程数量
	producers int
	consumers int

	// 每个生产者写入的元素数量
	itemsPerProducer int

	// 所有生产者合计每秒最多写入的元素数量，0表示不限速
	rate float64

	// 入队和出队的等待方式
	putMode queueservice.WaitMode
	getMode queueservice.WaitMode

	logger zerolog.Logger
}

// DefaultConfig 返回负载生成器的默认配置
func DefaultConfig() Config {
	return Config{
		producers:        4,
		consumers:        4,
		itemsPerProducer: 100,
		putMode:          queueservice.Blocking(),
		getMode:          queueservice.Blocking(),
		logger:           zerolog.Nop(),
	}
}

// WithProducers 设置生产者数量
func WithProducers(count int) Option {
	return func(config *Config) {
		if count > 0 {
			config.producers = count
		}
	}
}

// WithConsumers 设置消费者数量
func WithConsumers(count int) Option {
	return func(config *Config) {
		if count > 0 {
			config.consumers = count
		}
	}
}

// WithItemsPerProducer 设置每个生产者写入的元素数量
func WithItemsPerProducer(count int) Option {
	return func(config *Config) {
		if count > 0 {
			config.itemsPerProducer = count
		}
	}
}

// WithRate 限制所有生产者合计的写入速率
func WithRate(perSecond float64) Option {
	return func(config *Config) {
		if perSecond >= 0 {
			config.rate = perSecond
		}
	}
}

// WithPutMode 设置生产者的等待方式
func WithPutMode(mode queueservice.WaitMode) Option {
	return func(config *Config) {
		config.putMode = mode
	}
}

// WithGetMode 设置消费者的等待方式
func WithGetMode(mode queueservice.WaitMode) Option {
	return func(config *Config) {
		config.getMode = mode
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger zerolog.Logger) Option {
	return func(config *Config) {
		config.logger = logger
	}
}
