// Package config loads the scribe CLI and server configuration.
//
// Sources are applied in order: built-in defaults, an optional YAML or TOML
// file (chosen by extension), then SCRIBE_* environment variables. Command
// line flags are applied last by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/integrity"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SCRIBE_"

// Config holds all scribe settings.
type Config struct {
	// Store
	Folder      string `yaml:"folder" toml:"folder"`
	MustExist   bool   `yaml:"must_exist" toml:"must_exist"`
	Signing     string `yaml:"signing" toml:"signing"`
	DefaultMode string `yaml:"default_mode" toml:"default_mode"`

	// Server
	Port          int    `yaml:"port" toml:"port"`
	AuthSecret    string `yaml:"auth_secret" toml:"auth_secret"`
	PruneSchedule string `yaml:"prune_schedule" toml:"prune_schedule"`

	// Logging
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`
	LogFile   string `yaml:"log_file" toml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Folder:      ".",
		Signing:     integrity.Off,
		DefaultMode: string(core.DefaultMode),
		Port:        8080,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load builds the configuration from defaults, the file at path (skipped when
// empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Folder = envOr("FOLDER", c.Folder)
	c.MustExist = envBool("MUST_EXIST", c.MustExist)
	c.Signing = envOr("SIGNING", c.Signing)
	c.DefaultMode = envOr("DEFAULT_MODE", c.DefaultMode)
	c.Port = envInt("PORT", c.Port)
	c.AuthSecret = envOr("AUTH_SECRET", c.AuthSecret)
	c.PruneSchedule = envOr("PRUNE_SCHEDULE", c.PruneSchedule)
	c.LogLevel = envOr("LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOr("LOG_FORMAT", c.LogFormat)
	c.LogFile = envOr("LOG_FILE", c.LogFile)
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if _, _, err := integrity.ParseSetting(c.Signing); err != nil {
		return err
	}
	if _, err := core.ParseMode(c.DefaultMode); err != nil {
		return err
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if c.PruneSchedule != "" {
		if _, err := cron.ParseStandard(c.PruneSchedule); err != nil {
			return fmt.Errorf("invalid prune schedule: %w", err)
		}
	}
	return nil
}

// Mode returns the validated default mode.
func (c *Config) Mode() core.Mode {
	return core.Mode(c.DefaultMode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
