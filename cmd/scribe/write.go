package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/pkg/core"
)

var (
	writeContent string
	writeMode    string
	writeOwner   int
	writeJSON    bool
)

var writeCmd = &cobra.Command{
	Use:     "touch",
	Aliases: []string{"write"},
	Short:   "Create a text file with a generated name",
	Long: `Create a text file with a generated name. Content comes from --content,
or from stdin when the flag is not given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		content := writeContent
		if !cmd.Flags().Changed("content") {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Error reading stdin", err)
			}
			content = string(data)
		}

		var owner *int
		if cmd.Flags().Changed("owner") {
			owner = &writeOwner
		}

		rec, err := svc.WriteFile(context.Background(), content, core.Mode(writeMode), owner)
		if err != nil {
			fatal("Error creating file", err)
		}

		if writeJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rec); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Println("File info:")
		printInfo(os.Stdout, rec)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVarP(&writeContent, "content", "c", "", "File content (default: read stdin)")
	writeCmd.Flags().StringVarP(&writeMode, "security", "s", "", "Open mode, e.g. w, w+, a (default: configured mode)")
	writeCmd.Flags().IntVar(&writeOwner, "owner", 0, "Owner id recorded in the signature")
	writeCmd.Flags().BoolVar(&writeJSON, "json", false, "Output in JSON format")
}
