package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/blockq/internal/queueservice"
)

// statsCmd 表示stats命令，用于显示队列的统计信息
var statsCmd = &cobra.Command{
	Use:   "stats [queue-name]",
	Short: "Display queue statistics",
	Long: `Display detailed statistics for a specified queue.
This includes size, capacity, operation counts, waiting callers, and more.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 获取队列名称
		queueName := args[0]
		asJSON, _ := cmd.Flags().GetBool("json")

		// 获取队列服务
		service := GetQueueService()

		// 获取统计信息
		stats, err := service.QueueStats(queueName)
		if err != nil {
			return fmt.Errorf("failed to get queue statistics: %w", err)
		}

		if asJSON {
			var id string
			for _, info := range service.ListQueues() {
				if info.Name == queueName {
					id = info.ID
				}
			}

			data, err := queueservice.SerializeStats(queueservice.NewStatsData(id, queueName, stats))
			if err != nil {
				return fmt.Errorf("failed to encode statistics: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		// 格式化并显示统计信息
		fmt.Printf("Statistics for queue '%s':\n\n", queueName)
		fmt.Print(queueservice.FormatQueueStats(stats))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("json", false, "Print statistics as JSON")
}
