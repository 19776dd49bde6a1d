package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/blockq/internal/queueservice"
	"github.com/fyerfyer/blockq/interrupt"
	"github.com/fyerfyer/blockq/queue"
)

// addWaitFlags 为 put/get 添加等待方式相关的参数
func addWaitFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("block", "b", true, "Wait while the queue is full/empty (--block=false to fail immediately)")
	cmd.Flags().DurationP("timeout", "t", 0, "Maximum time to wait, e.g. 500ms or 2s (0 means do not wait; default: queue timeout)")
}

// waitModeFromFlags 根据参数构造等待方式，未指定 --timeout 时使用队列的默认超时
func waitModeFromFlags(cmd *cobra.Command) queueservice.WaitMode {
	block, _ := cmd.Flags().GetBool("block")
	mode := queueservice.WaitMode{Block: block}

	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		mode.Timeout = &timeout
	}
	return mode
}

// describeFailure 把队列错误转换成面向用户的说明
func describeFailure(err error) string {
	if sig, ok := interrupt.FromError(err); ok {
		return fmt.Sprintf("interrupted by %v", sig)
	}

	switch {
	case errors.Is(err, queue.ErrOperationCancelled):
		return "operation cancelled"
	case errors.Is(err, queue.ErrQueueFull):
		return "queue is full"
	case errors.Is(err, queue.ErrQueueEmpty):
		return "queue is empty"
	default:
		return err.Error()
	}
}
