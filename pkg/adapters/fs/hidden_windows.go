//go:build windows

package fs

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

// hiddenPrefix is empty on Windows: hiding is an attribute, not a name.
const hiddenPrefix = ""

func markHidden(path string) error {
	p, err := windows.UTF16PtrFromString(filepath.Clean(path))
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	return windows.SetFileAttributes(p, attrs|windows.FILE_ATTRIBUTE_HIDDEN)
}
