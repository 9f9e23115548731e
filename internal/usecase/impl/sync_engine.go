package impl

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// watcherBuffer is how many unread changes a watcher may fall behind before it misses some.
const watcherBuffer = 16

var errAlreadyStarted = errors.New("sync engine already started")

// syncEngine subscribes to one collection and keeps an ordered, keyed view of it.
// Each snapshot is diffed against the raw records of the previous one so only added or
// changed records are decoded. The view is newest first: the reverse of the store order.
type syncEngine[T any] struct {
	name    string
	path    string
	store   repository.RealtimeStore
	decode  func(key string, raw json.RawMessage) (T, error)
	clone   func(T) T
	onApply func(items []T)
	logger  *slog.Logger

	mu      sync.RWMutex
	keys    []string
	raw     map[string]json.RawMessage
	items   map[string]T
	loading bool
	err     error
	stats   usecase.SyncStats
	version uint64

	watchMu  sync.Mutex
	watchers map[chan usecase.ViewChange]struct{}

	started atomic.Bool
	cancel  context.CancelFunc
	sub     repository.Subscription
	done    chan struct{}
}

func newSyncEngine[T any](
	name, path string,
	store repository.RealtimeStore,
	decode func(string, json.RawMessage) (T, error),
	clone func(T) T,
	logger *slog.Logger,
) *syncEngine[T] {
	return &syncEngine[T]{
		name:     name,
		path:     path,
		store:    store,
		decode:   decode,
		clone:    clone,
		logger:   logger.With(slog.String("engine", name), slog.String("path", path)),
		keys:     []string{},
		raw:      map[string]json.RawMessage{},
		items:    map[string]T{},
		loading:  true,
		watchers: map[chan usecase.ViewChange]struct{}{},
		done:     make(chan struct{}),
	}
}

// Start implements usecase.SyncEngine.
func (e *syncEngine[T]) Start(ctx context.Context) error {
	if e.started.Swap(true) {
		return errAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	sub, err := e.store.Subscribe(ctx, e.path)
	if err != nil {
		cancel()
		e.mu.Lock()
		e.err = err
		e.mu.Unlock()
		close(e.done)

		return errors.Wrapf(err, "subscribe to %s", e.path)
	}

	e.mu.Lock()
	e.cancel = cancel
	e.sub = sub
	e.mu.Unlock()

	go e.run(sub)

	e.logger.Info("Sync engine started")

	return nil
}

// Stop implements usecase.SyncEngine.
func (e *syncEngine[T]) Stop() {
	e.mu.RLock()
	cancel, sub := e.cancel, e.sub
	e.mu.RUnlock()

	if sub == nil {
		return
	}

	cancel()
	sub.Close()
	<-e.done
}

// Loading implements usecase.SyncEngine.
func (e *syncEngine[T]) Loading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.loading
}

// Err implements usecase.SyncEngine.
func (e *syncEngine[T]) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.err
}

// Done implements usecase.SyncEngine.
func (e *syncEngine[T]) Done() <-chan struct{} {
	return e.done
}

// Stats implements usecase.SyncEngine.
func (e *syncEngine[T]) Stats() usecase.SyncStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.stats
}

// Watch implements usecase.SyncEngine.
func (e *syncEngine[T]) Watch() (<-chan usecase.ViewChange, func()) {
	ch := make(chan usecase.ViewChange, watcherBuffer)

	e.watchMu.Lock()
	e.watchers[ch] = struct{}{}
	e.watchMu.Unlock()

	var once sync.Once
	unwatch := func() {
		once.Do(func() {
			e.watchMu.Lock()
			delete(e.watchers, ch)
			e.watchMu.Unlock()
		})
	}

	return ch, unwatch
}

// list returns copies of the items in view order.
func (e *syncEngine[T]) list() []T {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]T, 0, len(e.keys))
	for _, key := range e.keys {
		out = append(out, e.clone(e.items[key]))
	}

	return out
}

func (e *syncEngine[T]) get(key string) (T, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	item, ok := e.items[key]
	if !ok {
		var zero T

		return zero, false
	}

	return e.clone(item), true
}

func (e *syncEngine[T]) run(sub repository.Subscription) {
	defer close(e.done)

	for snapshot := range sub.Snapshots() {
		e.apply(snapshot)
	}

	err := sub.Err()
	if err == nil || errors.Is(err, repository.ErrSubscriptionClosed) {
		e.logger.Info("Sync engine stopped")

		return
	}

	e.mu.Lock()
	e.err = err
	e.mu.Unlock()

	e.logger.Error("Subscription terminated", slog.Any("error", err))
}

func (e *syncEngine[T]) apply(snapshot repository.Snapshot) {
	change := usecase.ViewChange{
		Added:   []string{},
		Changed: []string{},
		Removed: []string{},
	}

	e.mu.Lock()

	seen := make(map[string]struct{}, len(snapshot.Entries))
	keys := make([]string, 0, len(snapshot.Entries))
	for _, entry := range snapshot.Entries {
		seen[entry.Key] = struct{}{}

		prev, known := e.raw[entry.Key]
		if known && bytes.Equal(prev, entry.Value) {
			if _, ok := e.items[entry.Key]; ok {
				keys = append(keys, entry.Key)
			}

			continue
		}
		e.raw[entry.Key] = slices.Clone(entry.Value)

		_, present := e.items[entry.Key]
		item, err := e.decode(entry.Key, entry.Value)
		e.stats.Decoded++
		if err != nil {
			e.stats.Skipped++
			e.logger.Warn("Skipping malformed record", slog.String("key", entry.Key), slog.Any("error", err))
			if present {
				delete(e.items, entry.Key)
				change.Removed = append(change.Removed, entry.Key)
			}

			continue
		}

		e.items[entry.Key] = item
		keys = append(keys, entry.Key)
		if present {
			change.Changed = append(change.Changed, entry.Key)
		} else {
			change.Added = append(change.Added, entry.Key)
		}
	}

	for key := range e.raw {
		if _, ok := seen[key]; ok {
			continue
		}
		delete(e.raw, key)
		if _, ok := e.items[key]; ok {
			delete(e.items, key)
			change.Removed = append(change.Removed, key)
		}
	}
	slices.Sort(change.Removed)

	slices.Reverse(keys)
	e.keys = keys
	e.loading = false
	e.version++
	e.stats.Snapshots++
	change.Version = e.version

	if e.onApply != nil {
		items := make([]T, 0, len(keys))
		for _, key := range keys {
			items = append(items, e.items[key])
		}
		e.onApply(items)
	}

	e.mu.Unlock()

	e.logger.Debug("Snapshot applied",
		slog.Uint64("version", change.Version),
		slog.Int("records", len(keys)),
		slog.Int("added", len(change.Added)),
		slog.Int("changed", len(change.Changed)),
		slog.Int("removed", len(change.Removed)),
	)

	e.publish(change)
}

func (e *syncEngine[T]) publish(change usecase.ViewChange) {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	for ch := range e.watchers {
		select {
		case ch <- change:
		default:
			e.logger.Warn("Dropping view change for slow watcher", slog.Uint64("version", change.Version))
		}
	}
}
