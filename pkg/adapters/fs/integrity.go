package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/integrity"
)

// Integrity is the strategy a Store applies around its content operations.
type Integrity interface {
	// Name identifies the strategy ("off", "md5", "sha512").
	Name() string
	// Seal runs after a successful write.
	Seal(dir string, rec core.FileRecord) error
	// Verify runs after a successful read.
	Verify(dir string, rec core.FileRecord) error
	// Discard runs after a successful delete of name.
	Discard(dir, name string) error
	// Owns reports whether filename is bookkeeping of the strategy.
	Owns(filename string) bool
	// Orphans lists bookkeeping files of dir whose text file is gone.
	Orphans(dir string) ([]string, error)
}

type plain struct{}

// Plain returns the strategy that stores text files without signatures.
func Plain() Integrity { return plain{} }

func (plain) Name() string                         { return integrity.Off }
func (plain) Seal(string, core.FileRecord) error   { return nil }
func (plain) Verify(string, core.FileRecord) error { return nil }
func (plain) Discard(string, string) error         { return nil }
func (plain) Owns(string) bool                     { return false }
func (plain) Orphans(string) ([]string, error)     { return nil, nil }

// Signed keeps a detached digest next to every text file.
type Signed struct {
	algo   integrity.Algorithm
	hidden bool
}

// NewSigned returns the signing strategy for algo. Signature files are hidden
// the way the host OS hides files.
func NewSigned(algo integrity.Algorithm) *Signed {
	return &Signed{algo: algo, hidden: true}
}

// FromSetting builds the strategy for a signing setting such as "off" or "on,md5".
func FromSetting(setting string) (Integrity, error) {
	algo, enabled, err := integrity.ParseSetting(setting)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return Plain(), nil
	}
	return NewSigned(algo), nil
}

func (s *Signed) Name() string { return string(s.algo) }

// SignatureName returns the signature file name for a text file name.
func (s *Signed) SignatureName(name string) string {
	base := stem(name) + s.algo.Ext()
	if s.hidden {
		return hiddenPrefix + base
	}
	return base
}

func (s *Signed) Seal(dir string, rec core.FileRecord) error {
	path := filepath.Join(dir, s.SignatureName(rec.Name))
	return writeFileAtomic(path, []byte(integrity.Sum(s.algo, rec)), 0644, s.hidden)
}

func (s *Signed) Verify(dir string, rec core.FileRecord) error {
	sigName := s.SignatureName(rec.Name)
	stored, err := os.ReadFile(filepath.Join(dir, sigName))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: signature %s for %s", core.ErrNotFound, sigName, rec.Name)
		}
		return fmt.Errorf("failed to read signature %s: %w", sigName, err)
	}

	if !integrity.Verify(s.algo, rec, string(stored)) {
		return fmt.Errorf("%w: %s does not match %s", core.ErrTampered, rec.Name, sigName)
	}
	return nil
}

func (s *Signed) Discard(dir, name string) error {
	err := os.Remove(filepath.Join(dir, s.SignatureName(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Signed) Owns(filename string) bool {
	if !strings.HasSuffix(filename, s.algo.Ext()) {
		return false
	}
	return hiddenPrefix == "" || strings.HasPrefix(filename, hiddenPrefix)
}

// isSignatureName reports whether filename looks like a signature of any
// algorithm, not only the configured one.
func isSignatureName(filename string) bool {
	if hiddenPrefix != "" && !strings.HasPrefix(filename, hiddenPrefix) {
		return false
	}
	for _, algo := range integrity.Algorithms() {
		if strings.HasSuffix(filename, algo.Ext()) {
			return true
		}
	}
	return false
}

func (s *Signed) Orphans(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var orphans []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !s.Owns(name) {
			continue
		}
		base := strings.TrimSuffix(name, s.algo.Ext())
		if s.hidden {
			base = strings.TrimPrefix(base, hiddenPrefix)
		}
		if _, err := os.Stat(filepath.Join(dir, base+core.TextExtension)); os.IsNotExist(err) {
			orphans = append(orphans, name)
		}
	}
	return orphans, nil
}

var _ Integrity = (*Signed)(nil)
var _ Integrity = plain{}
