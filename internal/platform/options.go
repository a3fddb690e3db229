package platform

import (
	"log/slog"

	"github.com/aretw0/scribe/pkg/core"
)

// options holds the internal configuration for the scribe service.
type options struct {
	store         core.Store
	logger        *slog.Logger
	signing       string
	mustExist     bool
	defaultMode   core.Mode
	nameAttempts  int
	nameGenerator func() (string, error)
}

// Option defines a functional option for configuring scribe.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		signing:     "off",
		defaultMode: core.DefaultMode,
	}
}

// WithLogger sets the logger for the store and the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSigning selects the integrity strategy: "off", "md5", "sha512",
// "on,md5" or "on,sha512". Defaults to "off".
func WithSigning(setting string) Option {
	return func(o *options) {
		o.signing = setting
	}
}

// WithMustExist makes opening fail when the directory does not exist
// instead of creating it.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithDefaultMode sets the mode used for writes that do not name one.
func WithDefaultMode(mode core.Mode) Option {
	return func(o *options) {
		o.defaultMode = mode
	}
}

// WithNameAttempts bounds the retries when a generated file name is taken.
// Zero means default (5).
func WithNameAttempts(n int) Option {
	return func(o *options) {
		o.nameAttempts = n
	}
}

// WithNameGenerator replaces the random file name source.
// Mostly useful for deterministic tests.
func WithNameGenerator(fn func() (string, error)) Option {
	return func(o *options) {
		o.nameGenerator = fn
	}
}

// WithStore allows injecting a custom storage adapter (e.g. an in-memory mock).
// If provided, the filesystem adapter and the signing option are skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}
