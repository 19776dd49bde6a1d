// Package interrupt 把进程收到的异步信号转换成 context 取消
//
// 阻塞在 queue.BlockingQueue 上的 Put/Get 会在 context 取消后立即返回
// queue.ErrOperationCancelled，错误链中带有 *SignalError，调用方可以据此
// 区分是被信号打断还是被其他原因取消。
package interrupt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

// SignalError 是被信号取消的 context 的取消原因
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("interrupted by signal: %v", e.Signal)
}

// NotifyContext 返回一个在收到 sigs 中任一信号时被取消的 context
//
// 信号注册在函数返回前完成，返回后发送的信号不会触发默认的进程终止行为。
// 取消原因是 *SignalError，可通过 context.Cause 或 FromError 取得。
// 调用 stop 会注销信号并释放资源；没有给出信号时监听 os.Interrupt。
func NotifyContext(parent context.Context, sigs ...os.Signal) (ctx context.Context, stop context.CancelFunc) {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt}
	}

	ctx, cancel := context.WithCancelCause(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		select {
		case sig := <-ch:
			cancel(&SignalError{Signal: sig})
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()

	return ctx, func() {
		cancel(context.Canceled)
	}
}

// FromError 从错误链中取出打断操作的信号
func FromError(err error) (os.Signal, bool) {
	var sigErr *SignalError
	if errors.As(err, &sigErr) {
		return sigErr.Signal, true
	}
	return nil, false
}

// Interrupted 报告 ctx 是否因为收到信号而被取消
func Interrupted(ctx context.Context) bool {
	_, ok := FromError(context.Cause(ctx))
	return ok
}
