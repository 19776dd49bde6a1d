package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/fyerfyer/blockq/internal/config"
)

var LevelMap = map[string]zerolog.Level{
	"trace": zerolog.TraceLevel,
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// New 创建输出到标准错误的控制台日志
func New(cfg *config.Config) *zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter 创建写入 out 的控制台日志，级别取自配置，未知级别保持 info
func NewWithWriter(cfg *config.Config, out io.Writer) *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).With().Timestamp().Logger()

	logger = logger.Level(zerolog.InfoLevel)
	if level, ok := LevelMap[cfg.Log.Level]; ok {
		logger = logger.Level(level)
	}

	return &logger
}
