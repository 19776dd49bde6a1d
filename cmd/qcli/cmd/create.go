package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/blockq/internal/queueservice"
)

// createCmd 表示create命令，用于创建新队列
var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new queue",
	Long: `Create a new blocking queue with specified options.
Capacity 0 creates an unbounded queue. Flags that are not given fall back to
the queue defaults from the config file or QCLI_QUEUE_* environment variables.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 获取队列名称
		name := args[0]

		// 未指定的参数使用配置中的默认值
		opts := queueservice.QueueOptions{
			Capacity:   cfg.Queue.Capacity,
			PutTimeout: cfg.Queue.PutTimeout,
			GetTimeout: cfg.Queue.GetTimeout,
		}
		if cmd.Flags().Changed("capacity") {
			opts.Capacity, _ = cmd.Flags().GetInt("capacity")
		}
		if cmd.Flags().Changed("put-timeout") {
			opts.PutTimeout, _ = cmd.Flags().GetDuration("put-timeout")
		}
		if cmd.Flags().Changed("get-timeout") {
			opts.GetTimeout, _ = cmd.Flags().GetDuration("get-timeout")
		}

		// 创建队列
		service := GetQueueService()
		info, err := service.CreateQueue(name, opts)
		if err != nil {
			return fmt.Errorf("failed to create queue: %w", err)
		}

		// 显示成功信息
		fmt.Printf("Queue '%s' created successfully.\n", name)
		fmt.Printf("ID: %s\n", info.ID)
		fmt.Printf("Capacity: %s\n", formatCapacity(opts.Capacity))
		fmt.Printf("Put timeout: %s\n", formatTimeout(opts.PutTimeout))
		fmt.Printf("Get timeout: %s\n", formatTimeout(opts.GetTimeout))

		return nil
	},
}

// formatCapacity 格式化容量显示
func formatCapacity(capacity int) string {
	if capacity <= 0 {
		return "unbounded"
	}
	return strconv.Itoa(capacity)
}

// formatTimeout 格式化默认超时显示
func formatTimeout(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}

func init() {
	rootCmd.AddCommand(createCmd)

	// 添加参数
	createCmd.Flags().IntP("capacity", "c", 0, "Queue capacity (0 for unbounded)")
	createCmd.Flags().Duration("put-timeout", 0, "Default timeout for blocking puts, e.g. 500ms (0 for no timeout)")
	createCmd.Flags().Duration("get-timeout", 0, "Default timeout for blocking gets, e.g. 2s (0 for no timeout)")
}
