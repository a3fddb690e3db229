//go:build !windows

package fs

// hiddenPrefix hides signature files by the dot-file convention.
const hiddenPrefix = "."

func markHidden(string) error { return nil }
