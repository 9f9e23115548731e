package usecase

import (
	"context"
)

// ViewChange describes one snapshot applied to a materialized collection view.
// Keys are store keys; Version increases by one per applied snapshot.
type ViewChange struct {
	Version uint64   `json:"version"`
	Added   []string `json:"added"`
	Changed []string `json:"changed"`
	Removed []string `json:"removed"`
}

// Empty reports whether the snapshot left the view unchanged.
func (c ViewChange) Empty() bool {
	return len(c.Added) == 0 && len(c.Changed) == 0 && len(c.Removed) == 0
}

// SyncStats counts the work done by a sync engine since Start.
type SyncStats struct {
	Snapshots int `json:"snapshots"` // Snapshots applied.
	Decoded   int `json:"decoded"`   // Records decoded; unchanged records are not decoded again.
	Skipped   int `json:"skipped"`   // Malformed records left out of the view.
}

// SyncEngine keeps an in-memory view of one store collection current.
type SyncEngine interface {
	// Start subscribes to the collection. The engine runs until ctx is cancelled, Stop is
	// called or the subscription fails. Start may be called once.
	Start(ctx context.Context) error

	// Stop ends the subscription and waits for the engine goroutine to exit.
	Stop()

	// Loading is true until the first snapshot has been applied.
	Loading() bool

	// Err returns the terminal subscription error, or nil while running or after a clean stop.
	Err() error

	// Done is closed when the engine has stopped for any reason.
	Done() <-chan struct{}

	// Watch registers for view changes. The returned function unregisters the watcher.
	// Slow watchers miss changes rather than block the engine.
	Watch() (<-chan ViewChange, func())

	// Stats returns the engine counters.
	Stats() SyncStats
}
