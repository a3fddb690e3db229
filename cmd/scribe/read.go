package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	readJSON  bool
	readOwner int
)

var readCmd = &cobra.Command{
	Use:     "cat [name]",
	Aliases: []string{"read"},
	Short:   "Print a file",
	Long: `Print the content of a file. The .txt extension is optional.
With signing enabled the file is verified first; pass --owner for files
that were written on behalf of a user.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		var owner *int
		if cmd.Flags().Changed("owner") {
			owner = &readOwner
		}

		rec, err := svc.ReadFile(context.Background(), args[0], owner)
		if err != nil {
			fatal("Error reading file", err)
		}

		if readJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rec); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Print(rec.Content)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
	readCmd.Flags().IntVar(&readOwner, "owner", 0, "Owner id the file was written for")
}
