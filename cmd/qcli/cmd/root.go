package cmd

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fyerfyer/blockq/internal/config"
	"github.com/fyerfyer/blockq/internal/logger"
	"github.com/fyerfyer/blockq/internal/queueservice"
	"github.com/fyerfyer/blockq/interrupt"
)

var (
	// 队列服务实例，所有命令共享
	queueSvc queueservice.Service

	// 加载后的配置
	cfg *config.Config

	appLogger *zerolog.Logger

	cfgFile  string
	logLevel string

	// 是否已经处于交互模式
	inShell bool

	// 有命令正在执行，此时 Ctrl+C 只取消该命令
	commandRunning atomic.Bool
)

// rootCmd 表示CLI工具的根命令
var rootCmd = &cobra.Command{
	Use:   "qcli",
	Short: "A CLI tool for managing blocking queues",
	Long: `Queue CLI (qcli) is a command line interface for creating and managing
bounded or unbounded blocking queues. Items can be put and taken in blocking,
non-blocking or timed mode, and a blocked call can be interrupted with Ctrl+C.

Run without a subcommand to start the interactive shell.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	// 错误由 Execute 和交互模式统一输出
	SilenceErrors: true,
	SilenceUsage:  true,
}

// runRoot 没有子命令时进入交互模式，已在交互模式中则显示帮助
func runRoot(cmd *cobra.Command, args []string) error {
	if inShell {
		return cmd.Help()
	}
	runInteractiveMode()
	return nil
}

// Execute 运行根命令并处理任何错误
func Execute() {
	err := runCommand(os.Args[1:])

	// 在程序结束时关闭队列服务
	if queueSvc != nil {
		_ = queueSvc.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runCommand 执行一条命令
// 除交互模式本身外，每条命令都在一个收到 Ctrl+C 即取消的 context 中运行
func runCommand(args []string) error {
	defer resetCommands(rootCmd)
	rootCmd.SetArgs(args)

	target, _, err := rootCmd.Find(args)
	if err == nil && (target == rootCmd || target == interactiveCmd) {
		return rootCmd.ExecuteContext(context.Background())
	}

	// 先注册信号再标记为执行中，标记期间的 Ctrl+C 一定能取消该命令
	ctx, stop := interrupt.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	commandRunning.Store(true)
	defer commandRunning.Store(false)

	// cobra 只在子命令没有 context 时才继承根命令的 context
	if err == nil {
		target.SetContext(ctx)
	}
	return rootCmd.ExecuteContext(ctx)
}

// setup 加载配置并创建日志与队列服务，只执行一次
func setup(cmd *cobra.Command) error {
	if queueSvc != nil {
		return nil
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level = logLevel
	}

	cfg = loaded
	appLogger = logger.New(cfg)
	queueSvc = queueservice.NewInMemoryService(*appLogger)

	appLogger.Debug().Str("level", cfg.Log.Level).Msg("qcli initialized")
	return nil
}

func init() {
	rootCmd.RunE = runRoot

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: qcli.yaml in /etc/qcli, $HOME/.qcli or .)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
}

// GetQueueService 返回队列服务实例，供子命令使用
func GetQueueService() queueservice.Service {
	return queueSvc
}
