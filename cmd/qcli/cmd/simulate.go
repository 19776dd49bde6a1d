package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/blockq/internal/loadgen"
	"github.com/fyerfyer/blockq/internal/queueservice"
)

// simulateCmd 用一组生产者和消费者模拟队列上的流量
var simulateCmd = &cobra.Command{
	Use:   "simulate [queue-name]",
	Short: "Simulate concurrent producers and consumers on a queue",
	Long: `Start several producer and consumer goroutines on a queue and report what
happened to the items. On a bounded queue this shows backpressure: producers
wait for free slots (or drop items with --block=false). Press Ctrl+C to stop early.`,
	Aliases: []string{"sim"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queueName := args[0]

		producers, _ := cmd.Flags().GetInt("producers")
		consumers, _ := cmd.Flags().GetInt("consumers")
		items, _ := cmd.Flags().GetInt("items")
		perSecond, _ := cmd.Flags().GetFloat64("rate")

		if producers <= 0 || consumers <= 0 || items <= 0 {
			return fmt.Errorf("producers, consumers and items must be positive")
		}

		mode := waitModeFromFlags(cmd)
		gen := loadgen.New(GetQueueService(),
			loadgen.WithProducers(producers),
			loadgen.WithConsumers(consumers),
			loadgen.WithItemsPerProducer(items),
			loadgen.WithRate(perSecond),
			loadgen.WithPutMode(mode),
			loadgen.WithGetMode(mode),
			loadgen.WithLogger(*appLogger),
		)

		fmt.Printf("Simulating %d producers and %d consumers on '%s' (%d items)...\n",
			producers, consumers, queueName, gen.Total())

		metrics, err := gen.Run(cmd.Context(), queueName)
		if err != nil && metrics.Elapsed == 0 {
			return err
		}
		if err != nil {
			fmt.Printf("Stopped early: %v\n", err)
		}

		printSimulationMetrics(metrics)

		if stats, err := GetQueueService().QueueStats(queueName); err == nil {
			fmt.Println()
			fmt.Print(queueservice.FormatQueueStats(stats))
		}
		return nil
	},
}

func printSimulationMetrics(m loadgen.Metrics) {
	fmt.Printf("Elapsed: %v\n", m.Elapsed)
	fmt.Printf("Produced: %d (dropped %d)\n", m.Produced, m.PutFailures)
	fmt.Printf("Consumed: %d (empty polls %d)\n", m.Consumed, m.GetFailures)
	fmt.Printf("Avg call time: put %v, get %v\n", m.AvgPutLatency, m.AvgGetLatency)
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntP("producers", "p", 4, "Number of producer goroutines")
	simulateCmd.Flags().IntP("consumers", "c", 4, "Number of consumer goroutines")
	simulateCmd.Flags().IntP("items", "n", 100, "Items written by each producer")
	simulateCmd.Flags().Float64P("rate", "r", 0, "Total put rate limit in items per second (0 for unlimited)")
	addWaitFlags(simulateCmd)
}
