package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove signatures whose text file is gone",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		removed, err := svc.Prune(context.Background())
		if err != nil {
			fatal("Error pruning", err)
		}
		for _, name := range removed {
			fmt.Println(name)
		}
		fmt.Printf("%d orphaned signature(s) removed\n", len(removed))
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
