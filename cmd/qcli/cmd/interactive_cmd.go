package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errAlreadyInteractive = errors.New("already in interactive mode")

// interactiveCmd 表示交互式命令，用于启动一个REPL
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an interactive session",
	Long: `Start an interactive session with the queue CLI.
Commands can be entered directly at the prompt.
Ctrl+C interrupts a blocked put or get; at an idle prompt it exits.
Type 'exit' or 'quit' to exit.`,
	Aliases: []string{"i", "shell"},
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if inShell {
		return errAlreadyInteractive
	}
	runInteractiveMode()
	return nil
}

func init() {
	interactiveCmd.RunE = runInteractive
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractiveMode() {
	inShell = true
	defer func() { inShell = false }()

	fmt.Println("Queue CLI Interactive Mode")
	fmt.Println("Type 'help' for available commands or 'exit' to quit")

	// 命令执行期间 Ctrl+C 只取消该命令，空闲时才退出
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		for sig := range sigChan {
			if sig == os.Interrupt && commandRunning.Load() {
				continue
			}
			fmt.Println("\nReceived interrupt signal, exiting...")
			if queueSvc != nil {
				_ = queueSvc.Close()
			}
			os.Exit(0)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		// 使用自定义提示符
		fmt.Print("> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			fmt.Println("Exiting...")
			return
		}

		executeCommand(input)
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
}

func executeCommand(input string) {
	// 使用shellwords解析命令行参数
	parser := shellwords.NewParser()
	args, err := parser.Parse(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command: %v\n", err)
		return
	}

	if len(args) == 0 {
		return
	}

	if err := runCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// resetCommands 将所有命令的标志恢复为默认值并清除上一次的 context
// 交互模式下同一个命令会被多次执行，上一次的状态不能带到下一次
func resetCommands(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	cmd.SetContext(nil)

	for _, sub := range cmd.Commands() {
		resetCommands(sub)
	}
}
