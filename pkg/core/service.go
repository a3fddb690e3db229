package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Service is the entry point shared by the CLI and the HTTP server.
// Every store call runs under a single mutex so that concurrent callers never
// interleave a write with its signature or a delete with its cleanup.
type Service struct {
	mu          sync.Mutex
	store       Store
	logger      *slog.Logger
	defaultMode Mode
}

// NewService creates a new Service. A nil logger discards output.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger, defaultMode: DefaultMode}
}

// SetDefaultMode changes the mode WriteFile uses when none is given.
func (s *Service) SetDefaultMode(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultMode = mode
	return nil
}

// DefaultMode returns the mode WriteFile uses when none is given.
func (s *Service) DefaultMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultMode
}

// Directory returns the store's current directory.
func (s *Service) Directory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Directory()
}

// Signing names the store's integrity strategy.
func (s *Service) Signing() string {
	return s.store.Signing()
}

// ChangeDirectory moves the store's current directory.
func (s *Service) ChangeDirectory(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetDirectory(ctx, path); err != nil {
		return err
	}
	s.logger.Info("directory changed", "path", s.store.Directory())
	return nil
}

// ListFiles returns the files of the current directory. A non-empty pattern
// filters names with doublestar glob syntax.
func (s *Service) ListFiles(ctx context.Context, pattern string) ([]FileRecord, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w %q", ErrInvalidPattern, pattern)
	}

	s.mu.Lock()
	records, err := s.store.List(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return records, nil
	}

	filtered := make([]FileRecord, 0, len(records))
	for _, rec := range records {
		if ok, _ := doublestar.Match(pattern, rec.Name); ok {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// ReadFile retrieves a file and verifies it when the store signs content.
func (s *Service) ReadFile(ctx context.Context, name string, owner *int) (FileRecord, error) {
	if name == "" {
		return FileRecord{}, fmt.Errorf("%w: empty file name", ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Read(ctx, name, owner)
	if err != nil {
		if errors.Is(err, ErrTampered) {
			s.logger.Warn("tampered file detected", "name", name, "error", err)
		}
		return FileRecord{}, err
	}
	return rec, nil
}

// WriteFile creates a new text file. An empty mode selects the default mode.
func (s *Service) WriteFile(ctx context.Context, content string, mode Mode, owner *int) (FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == "" {
		mode = s.defaultMode
	}
	if !mode.Valid() {
		return FileRecord{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	rec, err := s.store.Write(ctx, content, mode, owner)
	if err != nil {
		return FileRecord{}, err
	}
	s.logger.Info("file created", "name", rec.Name, "size", rec.Size, "signing", s.store.Signing())
	return rec, nil
}

// DeleteFile removes a text file and returns its relative name.
func (s *Service) DeleteFile(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty file name", ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.store.Delete(ctx, name)
	if err != nil {
		return "", err
	}
	s.logger.Info("file deleted", "name", removed)
	return removed, nil
}

// Prune removes orphaned signature files if the store supports it.
func (s *Service) Prune(ctx context.Context) ([]string, error) {
	p, ok := s.store.(Prunable)
	if !ok {
		return nil, errors.New("store does not support pruning")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := p.Prune(ctx)
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		s.logger.Info("orphaned signatures removed", "count", len(removed))
	}
	return removed, nil
}

// Watch observes changes in the current directory if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w %q", ErrInvalidPattern, pattern)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return w.Watch(ctx, pattern)
}
