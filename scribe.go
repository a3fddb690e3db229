package scribe

import (
	"log/slog"

	"github.com/aretw0/scribe/internal/platform"
	"github.com/aretw0/scribe/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// FileRecord is a public alias for the core file record.
type FileRecord = core.FileRecord

// Mode is a public alias for the core open mode.
type Mode = core.Mode

// Service is a public alias for the core service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring scribe.
type Option = platform.Option

// WithLogger sets the logger for the store and the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSigning selects the integrity strategy ("off", "on,md5", "on,sha512").
func WithSigning(setting string) Option {
	return platform.WithSigning(setting)
}

// WithMustExist ensures the directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithDefaultMode sets the mode used for writes that do not name one.
func WithDefaultMode(mode Mode) Option {
	return platform.WithDefaultMode(mode)
}

// WithNameAttempts bounds the retries when a generated file name is taken.
func WithNameAttempts(n int) Option {
	return platform.WithNameAttempts(n)
}

// WithStore allows injecting a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// --- Factory ---

// New creates a new scribe Service.
func New(path string, opts ...Option) (*Service, error) {
	return platform.New(path, opts...)
}

// Init opens a store explicitly.
func Init(path string, opts ...Option) (core.Store, error) {
	return platform.Init(path, opts...)
}

// --- Modes ---

const (
	ModeRead      = core.ModeRead
	ModeReadWrite = core.ModeReadWrite
	ModeWrite     = core.ModeWrite
	ModeWriteRead = core.ModeWriteRead
	ModeAppend    = core.ModeAppend
)
