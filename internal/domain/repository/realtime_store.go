// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Store-level errors shared by every RealtimeStore implementation.
var (
	// ErrStoreUnavailable marks connectivity or permission failures reported by the store.
	ErrStoreUnavailable = errors.New("realtime store unavailable")
	// ErrSubscriptionClosed is returned by Subscription.Err after Close.
	ErrSubscriptionClosed = errors.New("subscription closed")
	// ErrInvalidPath is returned for empty or malformed key paths.
	ErrInvalidPath = errors.New("invalid store path")
	// ErrTransactionAborted is returned when a transaction keeps conflicting past its retry limit.
	ErrTransactionAborted = errors.New("transaction aborted")
)

// Entry is one child of a collection in a snapshot.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Snapshot is the full content of a collection at a point in time.
// Entries are in the store's natural order, which is creation order for pushed keys.
type Snapshot struct {
	Path    string
	Entries []Entry
}

// Subscription is a live feed of full-collection snapshots.
type Subscription interface {
	// Snapshots delivers snapshots in the order the store emits them. The channel is closed
	// when the subscription ends, either through Close or a terminal store failure.
	Snapshots() <-chan Snapshot

	// Err reports why the snapshot channel closed. It returns nil while the subscription is live.
	Err() error

	// Close ends the subscription and releases its resources. It is safe to call more than once.
	Close()
}

// TransactionFunc receives the current value at a path (nil when absent) and returns the value
// to write. Returning a nil value removes the node, which leaves an absent node absent.
// Returning an error aborts the transaction without writing; the error is returned unchanged.
type TransactionFunc func(current json.RawMessage) (json.RawMessage, error)

// RealtimeStore is the key-path addressable, multi-writer store shared by every client.
// Paths are slash separated, e.g. "products/-Nabc/ratingTotal".
type RealtimeStore interface {
	// Subscribe registers a continuous listener on a collection path. The first snapshot is
	// delivered as soon as the store answers.
	Subscribe(ctx context.Context, path string) (Subscription, error)

	// Set overwrites the value at path.
	Set(ctx context.Context, path string, value any) error

	// Update applies every path/value pair atomically: all entries apply or none do.
	Update(ctx context.Context, values map[string]any) error

	// Remove deletes the value at path and all descendants. Removing an absent path succeeds.
	Remove(ctx context.Context, path string) error

	// Push allocates a fresh, time-ordered child key under a collection without writing.
	Push(ctx context.Context, collection string) (string, error)

	// Transaction atomically reads and conditionally rewrites the value at path.
	Transaction(ctx context.Context, path string, fn TransactionFunc) error
}
