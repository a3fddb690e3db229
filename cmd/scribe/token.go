package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/internal/server"
)

var (
	tokenUser int
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the HTTP API",
	Long: `Mint an HS256 bearer token signed with the configured auth secret
(SCRIBE_AUTH_SECRET or auth_secret in the config file). The user id becomes
the owner of files created with the token.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.AuthSecret == "" {
			fatal("Error minting token", errors.New("no auth secret configured"))
		}
		if !cmd.Flags().Changed("user") {
			fatal("Error minting token", errors.New("--user is required"))
		}

		token, err := server.NewAuth(cfg.AuthSecret).IssueToken(tokenUser, tokenTTL)
		if err != nil {
			fatal("Error minting token", err)
		}
		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().IntVar(&tokenUser, "user", 0, "User id carried by the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime (0 for no expiry)")
}
