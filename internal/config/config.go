package config

import (
	"errors"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const Name = "qcli"

var Paths = []string{
	"/etc/qcli",
	"$HOME/.qcli",
	".",
}

var (
	ErrBindEnv         = errors.New("failed to bind env")
	ErrReadConfig      = errors.New("failed to read config")
	ErrUnmarshalConfig = errors.New("failed to unmarshal config")
	ErrInvalidConfig   = errors.New("invalid config")
)

var envs = map[string][]string{
	"log.level":         {"QCLI_LOG_LEVEL"},
	"queue.capacity":    {"QCLI_QUEUE_CAPACITY"},
	"queue.put_timeout": {"QCLI_QUEUE_PUT_TIMEOUT"},
	"queue.get_timeout": {"QCLI_QUEUE_GET_TIMEOUT"},
}

type Config struct {
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Queue QueueDefaults `mapstructure:"queue"`
}

// QueueDefaults 是 create 命令未指定参数时使用的队列默认值
type QueueDefaults struct {
	Capacity   int           `mapstructure:"capacity"`
	PutTimeout time.Duration `mapstructure:"put_timeout"`
	GetTimeout time.Duration `mapstructure:"get_timeout"`
}

// Load 从配置文件和环境变量加载配置，file 非空时只读取该文件
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("queue.capacity", 0)
	v.SetDefault("queue.put_timeout", time.Duration(0))
	v.SetDefault("queue.get_timeout", time.Duration(0))

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		for _, path := range Paths {
			v.AddConfigPath(path)
		}
	}

	for key, names := range envs {
		binding := append([]string{key}, names...)
		if err := v.BindEnv(binding...); err != nil {
			return nil, errors.Join(ErrBindEnv, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Join(ErrReadConfig, err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, errors.Join(ErrUnmarshalConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Queue.Capacity < 0 {
		return errors.New("queue.capacity must not be negative")
	}
	if c.Queue.PutTimeout < 0 || c.Queue.GetTimeout < 0 {
		return errors.New("queue timeouts must not be negative")
	}
	return nil
}
