package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// monitorCmd 表示monitor命令，用于实时监控队列状态
var monitorCmd = &cobra.Command{
	Use:   "monitor [queue-name]",
	Short: "Monitor queue activity in real-time",
	Long: `Watch queue statistics update in real-time.
Press Ctrl+C to stop monitoring.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 获取队列名称
		queueName := args[0]

		// 获取刷新间隔
		refreshDuration, _ := cmd.Flags().GetDuration("interval")
		if refreshDuration <= 0 {
			return fmt.Errorf("interval must be positive")
		}

		// 获取队列服务
		service := GetQueueService()

		// 检查队列是否存在
		if _, err := service.GetQueue(queueName); err != nil {
			return err
		}

		// 显示监控启动信息
		fmt.Printf("Monitoring queue '%s' (refresh: %v, press Ctrl+C to stop)...\n\n",
			queueName, refreshDuration)

		// 记录前一次的统计信息，用于计算变化率
		var prevStats struct {
			Puts uint64
			Gets uint64
			Time time.Time
		}
		prevStats.Time = time.Now()

		// 监控循环
		ticker := time.NewTicker(refreshDuration)
		defer ticker.Stop()

		ctx := cmd.Context()
		for {
			select {
			case <-ticker.C:
				// 获取最新统计信息
				stats, err := service.QueueStats(queueName)
				if err != nil {
					return fmt.Errorf("failed to get queue statistics: %w", err)
				}

				// 计算每秒操作率
				now := time.Now()
				elapsed := now.Sub(prevStats.Time).Seconds()
				putRate := float64(stats.Puts-prevStats.Puts) / elapsed
				getRate := float64(stats.Gets-prevStats.Gets) / elapsed

				// 清除上一次输出
				fmt.Print("\033[H\033[2J") // 清屏，移动光标到左上角

				// 显示当前时间
				fmt.Printf("Time: %s\n\n", now.Format("15:04:05"))

				// 显示基本信息
				fmt.Printf("Queue: %s\n", queueName)
				fmt.Printf("Size: %d", stats.Size)
				if stats.Capacity > 0 {
					fmt.Printf("/%d (%.1f%% full)",
						stats.Capacity, stats.Utilization()*100)
				}
				fmt.Println()

				// 显示操作统计
				fmt.Printf("Operations: %d put, %d get\n", stats.Puts, stats.Gets)
				fmt.Printf("Rate: %.2f put/s, %.2f get/s\n", putRate, getRate)
				fmt.Printf("Waiting: %d producers, %d consumers\n",
					stats.WaitingProducers, stats.WaitingConsumers)

				// 显示其他统计信息
				if stats.PutBlocks > 0 || stats.GetBlocks > 0 {
					fmt.Printf("Blocks: %d put, %d get\n", stats.PutBlocks, stats.GetBlocks)
				}

				if stats.PutTimeouts > 0 || stats.GetTimeouts > 0 {
					fmt.Printf("Timeouts: %d put, %d get\n", stats.PutTimeouts, stats.GetTimeouts)
				}

				if stats.Rejected > 0 {
					fmt.Printf("Rejected: %d\n", stats.Rejected)
				}

				// 更新前一次统计信息
				prevStats.Puts = stats.Puts
				prevStats.Gets = stats.Gets
				prevStats.Time = now

			case <-ctx.Done():
				// 收到中断信号，退出监控
				fmt.Println("\nMonitoring stopped.")
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	// 添加参数
	monitorCmd.Flags().DurationP("interval", "i", time.Second, "Refresh interval, e.g. 500ms")
}
