package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/blockq/internal/queueservice"
)

// getCmd 表示get命令，用于从队列获取项目
var getCmd = &cobra.Command{
	Use:   "get [queue-name]",
	Short: "Remove and display items from a queue",
	Long: `Remove and display one or more items from a specified queue.
On an empty queue the command waits for an item unless --block=false is given;
--timeout bounds each wait and Ctrl+C interrupts it.`,
	Aliases: []string{"dequeue"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 获取队列名称
		queueName := args[0]

		// 获取参数
		count, _ := cmd.Flags().GetInt("count")
		silent, _ := cmd.Flags().GetBool("silent")

		// 验证参数
		if count < 0 {
			return fmt.Errorf("count must be a non-negative number")
		}

		// 如果count为0，则设置为1（默认行为）
		if count == 0 {
			count = 1
		}

		service := GetQueueService()
		mode := waitModeFromFlags(cmd)

		// 批量出队
		var got int
		for i := 0; i < count; i++ {
			item, err := service.Get(cmd.Context(), queueName, mode)
			if err != nil {
				if errors.Is(err, queueservice.ErrQueueNotFound) {
					return err
				}
				// 如果是第一个项目就失败，返回错误
				if i == 0 {
					return fmt.Errorf("failed to get item: %s", describeFailure(err))
				}
				// 否则中断并报告部分成功
				fmt.Printf("Got %d item(s) before stopping: %s\n", i, describeFailure(err))
				break
			}

			got++
			if !silent {
				fmt.Printf("Item %d: %s\n", i+1, item)
			}
		}

		// 显示汇总信息
		if silent || got > 1 {
			fmt.Printf("Successfully got %d item(s) from queue '%s'\n", got, queueName)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	// 添加参数
	getCmd.Flags().IntP("count", "c", 1, "Number of items to get")
	getCmd.Flags().BoolP("silent", "s", false, "Silent mode (don't print items)")
	addWaitFlags(getCmd)
}
