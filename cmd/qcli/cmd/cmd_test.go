package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/blockq/internal/queueservice"
)

func TestRunCommand_PutGet(t *testing.T) {
	require.NoError(t, runCommand([]string{"create", "cli-jobs", "--capacity", "2"}))
	require.NoError(t, runCommand([]string{"put", "cli-jobs", "--item", "a,b"}))

	q, err := GetQueueService().GetQueue("cli-jobs")
	require.NoError(t, err)
	assert.Equal(t, 2, q.Qsize())
	assert.True(t, q.Full())

	err = runCommand([]string{"put", "cli-jobs", "--item", "c", "--block=false"})
	assert.ErrorContains(t, err, "queue is full")

	err = runCommand([]string{"put", "cli-jobs", "--item", "c", "--timeout", "10ms"})
	assert.ErrorContains(t, err, "queue is full")

	require.NoError(t, runCommand([]string{"get", "cli-jobs", "--count", "2", "--silent"}))
	assert.Equal(t, 0, q.Qsize())

	err = runCommand([]string{"get", "cli-jobs", "--timeout", "10ms"})
	assert.ErrorContains(t, err, "queue is empty")

	require.NoError(t, runCommand([]string{"delete", "cli-jobs"}))
	_, err = GetQueueService().GetQueue("cli-jobs")
	assert.ErrorIs(t, err, queueservice.ErrQueueNotFound)
}

func TestRunCommand_ResetsFlags(t *testing.T) {
	require.NoError(t, runCommand([]string{"create", "cli-reset"}))
	_ = runCommand([]string{"get", "cli-reset", "--block=false", "--timeout", "5ms"})

	assert.Equal(t, "true", getCmd.Flags().Lookup("block").Value.String())
	assert.False(t, getCmd.Flags().Changed("timeout"))

	stats, err := GetQueueService().QueueStats("cli-reset")
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Rejected)
}

func TestRunCommand_CreateUsesConfigDefaults(t *testing.T) {
	require.NoError(t, runCommand([]string{"list"}))

	orig := *cfg
	defer func() { *cfg = orig }()
	cfg.Queue.Capacity = 3
	cfg.Queue.GetTimeout = 15 * time.Millisecond

	require.NoError(t, runCommand([]string{"create", "cli-defaults"}))
	stats, err := GetQueueService().QueueStats("cli-defaults")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Capacity)

	start := time.Now()
	err = runCommand([]string{"get", "cli-defaults"})
	assert.ErrorContains(t, err, "queue is empty")
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)

	require.NoError(t, runCommand([]string{"create", "cli-override", "--capacity", "0"}))
	stats, err = GetQueueService().QueueStats("cli-override")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Capacity)
}

func TestRunCommand_Errors(t *testing.T) {
	err := runCommand([]string{"put", "cli-missing", "--item", "x"})
	assert.ErrorIs(t, err, queueservice.ErrQueueNotFound)

	err = runCommand([]string{"put", "cli-missing"})
	assert.ErrorContains(t, err, "must specify either --item or --file")

	err = runCommand([]string{"create", "cli-bad", "--capacity", "-1"})
	assert.Error(t, err)
}

func TestRunCommand_Simulate(t *testing.T) {
	require.NoError(t, runCommand([]string{"create", "cli-sim", "--capacity", "3"}))
	require.NoError(t, runCommand([]string{"simulate", "cli-sim", "-p", "3", "-c", "2", "-n", "20"}))

	stats, err := GetQueueService().QueueStats("cli-sim")
	require.NoError(t, err)
	assert.EqualValues(t, 60, stats.Puts)
	assert.EqualValues(t, 60, stats.Gets)
	assert.Zero(t, stats.Size)

	err = runCommand([]string{"simulate", "cli-sim", "-p", "0"})
	assert.ErrorContains(t, err, "must be positive")
}

func TestRunCommand_RepeatedTimedGets(t *testing.T) {
	require.NoError(t, runCommand([]string{"create", "cli-repeat"}))

	err := runCommand([]string{"get", "cli-repeat", "--block=false"})
	assert.ErrorContains(t, err, "queue is empty")

	// 每次执行都要拿到新的 context，而不是上一次已取消的
	for i := 0; i < 2; i++ {
		start := time.Now()
		err = runCommand([]string{"get", "cli-repeat", "--timeout", "100ms"})
		assert.ErrorContains(t, err, "queue is empty")
		assert.NotContains(t, err.Error(), "cancelled")
		assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	}

	stats, err := GetQueueService().QueueStats("cli-repeat")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.GetTimeouts)
	assert.Zero(t, stats.Cancellations)
	assert.Nil(t, getCmd.Context())
}

func TestRunCommand_ErrorsDoNotPrintUsage(t *testing.T) {
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
	assert.False(t, commandRunning.Load())
}
