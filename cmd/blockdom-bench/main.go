package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blockdom-bench",
		Short: "Benchmarks and a live demo for the blockdom reconciliation engine",
		Long: `blockdom-bench exercises the blockdom virtual-tree engine end to end.

The bench command runs reconciliation scenarios against an in-memory host
and reports host-operation counts and timings. The serve command runs a
demo server that patches a keyed list continuously and streams every
host operation to connected WebSocket clients.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		benchCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
