package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	scribelifecycle "github.com/aretw0/scribe/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Print changes to text files until interrupted",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src := scribelifecycle.NewSource(svc, pattern)
		if err := src.Start(ctx); err != nil {
			fatal("Error starting watch", err)
		}

		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", svc.Directory())
		for e := range src.Events() {
			fmt.Println(e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
