package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/blockq/internal/queueservice"
	"github.com/fyerfyer/blockq/queue"
)

// putCmd 表示put命令，用于向队列添加项目
var putCmd = &cobra.Command{
	Use:   "put [queue-name]",
	Short: "Add items to a queue",
	Long: `Add one or more items to a specified queue.
You can add a single item, a comma separated list, or read items from a file.
On a full bounded queue the command waits for free space unless --block=false
is given; --timeout bounds the wait and Ctrl+C interrupts it.`,
	Aliases: []string{"enqueue"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 获取队列名称
		queueName := args[0]

		// 获取参数
		item, _ := cmd.Flags().GetString("item")
		filePath, _ := cmd.Flags().GetString("file")

		// 检查是否同时指定了item和file
		if item != "" && filePath != "" {
			return fmt.Errorf("cannot specify both --item and --file flags at the same time")
		}

		// 检查是否没有指定item和file
		if item == "" && filePath == "" {
			return fmt.Errorf("must specify either --item or --file flag")
		}

		service := GetQueueService()
		mode := waitModeFromFlags(cmd)

		// 从文件批量入队
		if filePath != "" {
			return putFromFile(cmd.Context(), service, queueName, filePath, mode)
		}

		items := queueservice.ParseItems(item)
		if len(items) == 1 {
			if err := service.Put(cmd.Context(), queueName, items[0], mode); err != nil {
				if errors.Is(err, queueservice.ErrQueueNotFound) {
					return err
				}
				return fmt.Errorf("failed to put item: %s", describeFailure(err))
			}
			fmt.Printf("Successfully put item to queue '%s'\n", queueName)
			return nil
		}

		put, err := putAll(cmd.Context(), service, queueName, items, mode)
		fmt.Printf("Put %d of %d item(s) to queue '%s'\n", put, len(items), queueName)
		return err
	},
}

// putAll 依次入队，遇到第一个错误即停止
func putAll(ctx context.Context, service queueservice.Service, queueName string, items []string, mode queueservice.WaitMode) (int, error) {
	for i, item := range items {
		if err := service.Put(ctx, queueName, item, mode); err != nil {
			if errors.Is(err, queueservice.ErrQueueNotFound) {
				return i, err
			}
			return i, fmt.Errorf("failed to put %q: %s", item, describeFailure(err))
		}
	}
	return len(items), nil
}

// putFromFile 从文件中读取项目并入队
func putFromFile(ctx context.Context, service queueservice.Service, queueName, filePath string, mode queueservice.WaitMode) error {
	// 打开文件
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// 读取文件内容
	scanner := bufio.NewScanner(file)
	var put, failed int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue // 跳过空行
		}

		err := service.Put(ctx, queueName, line, mode)
		if err == nil {
			put++
			continue
		}

		// 队列不存在或被中断时没有必要继续
		if errors.Is(err, queueservice.ErrQueueNotFound) {
			return err
		}
		if errors.Is(err, queue.ErrOperationCancelled) {
			fmt.Printf("Bulk put to queue '%s' %s after %d items\n", queueName, describeFailure(err), put)
			return nil
		}

		failed++
		fmt.Printf("Failed to put: %s - %s\n", line, describeFailure(err))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	fmt.Printf("Bulk put to queue '%s' completed: %d items put, %d failed\n",
		queueName, put, failed)
	return nil
}

func init() {
	rootCmd.AddCommand(putCmd)

	// 添加参数
	putCmd.Flags().StringP("item", "i", "", "Item to put (comma separated for several)")
	putCmd.Flags().StringP("file", "f", "", "File containing items to put (one per line)")
	addWaitFlags(putCmd)
}
