package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/internal/config"
)

var (
	cfgFile   string
	folder    string
	signing   string
	mustExist bool
	logLevel  string
	logFile   string
	logFormat string
	verbose   bool

	// cfg is resolved in PersistentPreRun: defaults, file, env, then flags.
	cfg       *config.Config
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "A plain text file store with optional signatures",
	Long: `Scribe keeps text files with generated names in a working directory.
With signing enabled every file gets a hidden md5 or sha512 companion and
reads fail when the file was changed behind scribe's back.

Run without a subcommand to start the interactive shell.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			fatal("Error loading config", err)
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			fatal("Invalid configuration", err)
		}

		logger, closer, err := newLogger(cfg)
		if err != nil {
			fatal("Error opening log file", err)
		}
		logCloser = closer
		slog.SetDefault(logger)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runShellCmd(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (.yaml, .yml or .toml)")
	pf.StringVarP(&folder, "folder", "f", "", "Working directory (absolute or relative path)")
	pf.StringVarP(&signing, "signing", "e", "", `Signing mode: "off", "on,md5" or "on,sha512"`)
	pf.BoolVar(&mustExist, "must-exist", false, "Fail if the working directory does not exist")
	pf.StringVarP(&logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")
	pf.StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.Flags().StringVarP(&shellMode, "security", "s", "", "Mode for files created in the shell (default: w+)")
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("folder") {
		cfg.Folder = folder
	}
	if flags.Changed("signing") {
		cfg.Signing = signing
	}
	if flags.Changed("must-exist") {
		cfg.MustExist = mustExist
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
}

func newLogger(c *config.Config) (*slog.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		out, closer = f, f
	}

	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	var handler slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), closer, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// openService builds the service from the resolved configuration.
func openService() *scribe.Service {
	svc, err := scribe.New(cfg.Folder,
		scribe.WithSigning(cfg.Signing),
		scribe.WithMustExist(cfg.MustExist),
		scribe.WithDefaultMode(cfg.Mode()),
		scribe.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("Error opening store", err)
	}
	return svc
}
