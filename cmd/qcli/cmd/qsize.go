package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// qsizeCmd 显示队列当前的元素数量
var qsizeCmd = &cobra.Command{
	Use:   "qsize [queue-name]",
	Short: "Show the approximate number of items in a queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := GetQueueService().GetQueue(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%d (empty: %t, full: %t)\n", q.Qsize(), q.Empty(), q.Full())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(qsizeCmd)
}
