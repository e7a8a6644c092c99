package snapshot

import "errors"

// Domain errors for the snapshot package.
var (
	// ErrNotFound is returned when no snapshot exists for an entry.
	ErrNotFound = errors.New("snapshot: not found")
)
