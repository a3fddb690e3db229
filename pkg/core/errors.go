package core

import "errors"

// Common errors. Stores wrap them with context; match with errors.Is.
var (
	// ErrNotFound reports a missing file, directory or signature.
	ErrNotFound = errors.New("not found")

	// ErrInvalidMode reports an open mode outside the supported set.
	ErrInvalidMode = errors.New("invalid file mode")

	// ErrTampered reports content or metadata that no longer matches its recorded hash.
	ErrTampered = errors.New("signature mismatch")

	// ErrInvalidPattern reports a malformed glob pattern.
	ErrInvalidPattern = errors.New("invalid pattern")
)
