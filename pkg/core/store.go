package core

import "context"

// Store defines the contract for a directory of text files.
// Implementations are not required to be safe for concurrent use; Service
// provides the serialisation.
type Store interface {
	// Directory returns the current directory every relative operation resolves against.
	Directory() string

	// SetDirectory moves the current directory. Relative paths resolve against
	// the previous one. Fails with ErrNotFound if path is not a directory.
	SetDirectory(ctx context.Context, path string) error

	// List returns the regular files of the current directory, content omitted.
	List(ctx context.Context) ([]FileRecord, error)

	// Read returns the full record for name (with or without TextExtension).
	Read(ctx context.Context, name string, owner *int) (FileRecord, error)

	// Write creates a new file with a generated name and returns its record.
	Write(ctx context.Context, content string, mode Mode, owner *int) (FileRecord, error)

	// Delete removes name and returns the relative name that was removed.
	Delete(ctx context.Context, name string) (string, error)

	// Signing names the integrity strategy ("off", "md5", "sha512").
	Signing() string
}

// Prunable is implemented by stores that can remove orphaned signature files.
type Prunable interface {
	// Prune removes signatures whose text file is gone and returns their names.
	Prune(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for stores that emit change events.
type Watchable interface {
	// Watch streams events for files matching pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
