package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/scribe/pkg/core"
)

const defaultNameAttempts = 5

// Store implements core.Store over a directory of plain text files.
// The current directory is plain per-instance state; the process working
// directory is never changed.
type Store struct {
	dir       string
	integrity Integrity
	config    Config

	mu            sync.RWMutex // guards dir and watcher bookkeeping
	watcherActive bool
}

// Config holds the configuration for the filesystem store.
type Config struct {
	Path      string
	MustExist bool // fail instead of creating a missing directory
	Integrity Integrity
	Logger    *slog.Logger

	// NameGenerator overrides the random file name source (tests).
	NameGenerator func() (string, error)
	// NameAttempts bounds retries when a generated name already exists.
	NameAttempts int
}

// NewStore creates a new filesystem-backed store. Relative paths are made
// absolute against the process working directory once, here.
func NewStore(config Config) *Store {
	if config.Integrity == nil {
		config.Integrity = Plain()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.NameGenerator == nil {
		config.NameGenerator = randomName
	}
	if config.NameAttempts <= 0 {
		config.NameAttempts = defaultNameAttempts
	}

	dir := config.Path
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	return &Store{
		dir:       dir,
		integrity: config.Integrity,
		config:    config,
	}
}

// Initialize ensures the working directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	dir := s.Directory()
	if s.config.MustExist {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: directory %s", core.ErrNotFound, dir)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", core.ErrNotFound, dir)
		}
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Directory returns the current directory.
func (s *Store) Directory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir
}

// Signing names the integrity strategy.
func (s *Store) Signing() string {
	return s.integrity.Name()
}

// SetDirectory moves the current directory.
func (s *Store) SetDirectory(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := s.resolve(path)
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: directory %s does not exist", core.ErrNotFound, path)
	}

	s.mu.Lock()
	s.dir = target
	s.mu.Unlock()
	s.config.Logger.Debug("current directory set", "path", target)
	return nil
}

// List enumerates the regular files of the current directory.
// Signature files and in-flight temp files are skipped.
func (s *Store) List(ctx context.Context) ([]core.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := s.Directory()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	records := make([]core.FileRecord, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || isSignatureName(name) || strings.HasPrefix(name, TempFilePrefix) {
			continue
		}

		fullPath := filepath.Join(dir, name)
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}

		modified := info.ModTime()
		records = append(records, core.FileRecord{
			Name:       name,
			CreatedAt:  creationTime(fullPath, info),
			ModifiedAt: &modified,
			Size:       info.Size(),
		})
	}
	return records, nil
}

// Read loads a text file and verifies it with the configured integrity strategy.
//
// Workflow:
//  1. Resolve name under the current directory, adding the text extension.
//  2. Require a regular file, read it in full.
//  3. Assemble the record from file metadata, attach owner.
//  4. Verify against the signature (no-op when signing is off).
func (s *Store) Read(ctx context.Context, name string, owner *int) (core.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return core.FileRecord{}, err
	}

	rel, err := fileName(name)
	if err != nil {
		return core.FileRecord{}, err
	}
	dir := s.Directory()
	fullPath := filepath.Join(dir, rel)

	info, err := os.Stat(fullPath)
	if err != nil || !info.Mode().IsRegular() {
		return core.FileRecord{}, fmt.Errorf("%w: file %s does not exist or name is invalid", core.ErrNotFound, rel)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.FileRecord{}, fmt.Errorf("%w: file %s", core.ErrNotFound, rel)
		}
		return core.FileRecord{}, fmt.Errorf("failed to open %s: %w", rel, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return core.FileRecord{}, fmt.Errorf("failed to read %s: %w", rel, err)
	}

	modified := info.ModTime()
	rec := core.FileRecord{
		Name:       rel,
		Content:    string(data),
		CreatedAt:  creationTime(fullPath, info),
		ModifiedAt: &modified,
		Size:       info.Size(),
		OwnerID:    owner,
	}

	if err := s.integrity.Verify(dir, rec); err != nil {
		return core.FileRecord{}, err
	}
	return rec, nil
}

// Write creates a new text file with a generated name.
//
// Workflow:
//  1. Reject modes outside the whitelist before touching the disk.
//  2. Create the file exclusively under a fresh random name, retrying on collision.
//  3. Write the content using the flags the mode maps to.
//  4. Stat the result and seal it with the integrity strategy.
func (s *Store) Write(ctx context.Context, content string, mode core.Mode, owner *int) (core.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return core.FileRecord{}, err
	}

	flags, err := openFlags(mode)
	if err != nil {
		return core.FileRecord{}, err
	}

	dir := s.Directory()
	f, rel, err := s.createUnique(dir, flags)
	if err != nil {
		return core.FileRecord{}, err
	}
	fullPath := filepath.Join(dir, rel)

	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return core.FileRecord{}, fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return core.FileRecord{}, fmt.Errorf("failed to close %s: %w", rel, err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return core.FileRecord{}, fmt.Errorf("failed to stat %s: %w", rel, err)
	}

	rec := core.FileRecord{
		Name:      rel,
		Content:   content,
		CreatedAt: creationTime(fullPath, info),
		Size:      info.Size(),
		OwnerID:   owner,
	}

	if err := s.integrity.Seal(dir, rec); err != nil {
		return core.FileRecord{}, fmt.Errorf("failed to sign %s: %w", rel, err)
	}
	return rec, nil
}

// createUnique opens a new file exclusively, drawing another name whenever
// the generated one is already taken.
func (s *Store) createUnique(dir string, flags int) (*os.File, string, error) {
	for attempt := 1; attempt <= s.config.NameAttempts; attempt++ {
		stem, err := s.config.NameGenerator()
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate file name: %w", err)
		}
		rel := stem + core.TextExtension

		f, err := os.OpenFile(filepath.Join(dir, rel), flags|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, rel, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("failed to create %s: %w", rel, err)
		}
		s.config.Logger.Debug("file name collision, retrying", "name", rel, "attempt", attempt)
	}
	return nil, "", fmt.Errorf("failed to find a free file name after %d attempts", s.config.NameAttempts)
}

// Delete removes a text file and then its signature.
func (s *Store) Delete(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, err := fileName(name)
	if err != nil {
		return "", err
	}
	dir := s.Directory()
	fullPath := filepath.Join(dir, rel)

	info, err := os.Lstat(fullPath)
	if os.IsNotExist(err) || (err == nil && !info.Mode().IsRegular()) {
		return "", fmt.Errorf("%w: file %s does not exist", core.ErrNotFound, rel)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", rel, err)
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: file %s does not exist", core.ErrNotFound, rel)
		}
		return "", fmt.Errorf("failed to remove file: %w", err)
	}

	if err := s.integrity.Discard(dir, rel); err != nil {
		return "", fmt.Errorf("failed to remove signature of %s: %w", rel, err)
	}
	return rel, nil
}

// Prune removes signatures whose text file no longer exists.
func (s *Store) Prune(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := s.Directory()
	orphans, err := s.integrity.Orphans(dir)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(orphans))
	for _, name := range orphans {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove orphan %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

// resolve interprets path relative to the current directory unless absolute.
func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.Directory(), path)
}

// fileName maps a caller-supplied name to a file in the current directory,
// appending the text extension unless it is already there. Names that would
// leave the directory are rejected.
func fileName(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid file name %q", core.ErrNotFound, name)
	}
	if strings.HasSuffix(name, core.TextExtension) {
		return name, nil
	}
	return name + core.TextExtension, nil
}

// stem strips the text extension from a file name.
func stem(name string) string {
	return strings.TrimSuffix(name, core.TextExtension)
}

var _ core.Store = (*Store)(nil)
var _ core.Prunable = (*Store)(nil)
