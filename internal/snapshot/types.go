package snapshot

import (
	"time"

	"github.com/nerrad567/slotboard/internal/strategy"
)

// EntrySnapshot is the last good hub data fetched for one configuration
// entry: the scoped registry rows, the entry metadata and the lock list.
// A render pass can be replayed from a snapshot without the hub.
type EntrySnapshot struct {
	EntryID   string
	Title     string
	Registry  []strategy.RawEntity
	Metadata  strategy.EntryMetadata
	Locks     []strategy.LockRef
	FetchedAt time.Time
}
