package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	listPattern string
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List files in the working directory",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		files, err := svc.ListFiles(context.Background(), listPattern)
		if err != nil {
			fatal("Error listing files", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(files); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		printList(os.Stdout, files)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listPattern, "pattern", "", "Only list names matching this glob")
}
