// Command layoutbench compares the lookup performance of the golayout
// policies on random int64 keys.
//
// Single lookups per policy:
//
//	$ go run ./cmd/layoutbench compare --keys 1048576 --queries 100000
//
// Batched (AMAC) lookups against single lookups across batch widths:
//
//	$ go run ./cmd/layoutbench batch --widths 1,8,16,32
//
// Open-loop load at a fixed request rate, reporting latency percentiles:
//
//	$ go run ./cmd/layoutbench load --qps 200000 --duration 5s
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "layoutbench: %s\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:           "layoutbench",
		Short:         "Benchmark golayout search policies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg.Flags(cmd.PersistentFlags())

	cmd.AddCommand(
		&cobra.Command{
			Use:   "compare",
			Short: "Single lookups per policy",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runCompare(cmd.Context(), cmd.OutOrStdout(), cfg)
			},
		},
		&cobra.Command{
			Use:   "batch",
			Short: "Batched lookups across batch widths",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runBatch(cmd.Context(), cmd.OutOrStdout(), cfg)
			},
		},
		newLoadCommand(cfg),
		&cobra.Command{
			Use:   "info",
			Short: "Print the selected vector instruction set",
			Run: func(cmd *cobra.Command, _ []string) {
				printInfo(cmd.OutOrStdout())
			},
		},
	)
	return cmd
}

func newLoadCommand(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Open-loop lookups at a fixed rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
	cfg.LoadFlags(cmd.Flags())
	return cmd
}
