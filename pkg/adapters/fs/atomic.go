package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight files; List skips them.
const TempFilePrefix = ".scribe-tmp-"

// writeFileAtomic stages data in a temp file next to filename and renames it
// into place, so readers see either no file or the complete one. When hidden
// is set the staged file is marked hidden before the rename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode, hidden bool) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	staged := tmp.Name()
	defer os.Remove(staged)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(staged, perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if hidden {
		if err := markHidden(staged); err != nil {
			return fmt.Errorf("failed to hide %s: %w", filepath.Base(filename), err)
		}
	}

	if err := os.Rename(staged, filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
