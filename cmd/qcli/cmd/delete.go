package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd 删除队列，队列中剩余的元素一并丢弃
var deleteCmd = &cobra.Command{
	Use:     "delete [queue-name]",
	Short:   "Delete a queue and drop its items",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetQueueService().DeleteQueue(args[0]); err != nil {
			return fmt.Errorf("failed to delete queue: %w", err)
		}

		fmt.Printf("Queue '%s' deleted.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
