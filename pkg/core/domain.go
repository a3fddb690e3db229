// Package core holds the domain types of scribe and the Service that
// serialises access to a Store.
package core

import "time"

// TextExtension is the fixed extension of every stored text file.
const TextExtension = ".txt"

// FileRecord is the unit of data a Store produces and consumes.
// Timestamps and size come from filesystem metadata; OwnerID is attached
// by the caller and may be nil.
type FileRecord struct {
	Name       string     `json:"name"`
	Content    string     `json:"content,omitempty"`
	CreatedAt  time.Time  `json:"create_date"`
	ModifiedAt *time.Time `json:"edit_date,omitempty"`
	Size       int64      `json:"size"`
	OwnerID    *int       `json:"user_id"`
}

// Owner is a convenience for building an OwnerID.
func Owner(id int) *int {
	return &id
}

// EventType represents the type of change in the working directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a text file.
type Event struct {
	Type      EventType `json:"type"`
	Name      string    `json:"name"`
	Timestamp int64     `json:"timestamp"` // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Name
}
