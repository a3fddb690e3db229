package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "rm [name]",
	Aliases: []string{"delete"},
	Short:   "Delete a file and its signature",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		removed, err := svc.DeleteFile(context.Background(), args[0])
		if err != nil {
			fatal("Error deleting file", err)
		}
		fmt.Printf("File %s deleted successfully\n", removed)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
