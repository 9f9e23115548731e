package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"
)

// MemoryStore is an in-process RealtimeStore. It keeps the whole tree as decoded JSON and
// fans every committed write out to the subscribers whose path it touches.
// It backs local development and acts as the real store collaborator in tests.
type MemoryStore struct {
	mu       sync.Mutex
	root     map[string]any
	subs     map[*subscription]struct{}
	pushIDs  *pushIDGenerator
	logger   *slog.Logger
	writeErr error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		root:    map[string]any{},
		subs:    map[*subscription]struct{}{},
		pushIDs: newPushIDGenerator(time.Now),
		logger:  logger,
	}
}

// Subscribe implements repository.RealtimeStore.
func (m *MemoryStore) Subscribe(ctx context.Context, path string) (repository.Subscription, error) {
	if len(repository.SplitPath(path)) == 0 {
		return nil, errors.Wrapf(repository.ErrInvalidPath, "subscribe %q", path)
	}

	var sub *subscription
	sub = newSubscription(ctx, path, func() {
		m.mu.Lock()
		delete(m.subs, sub)
		m.mu.Unlock()
	})

	m.mu.Lock()
	snapshot, err := m.snapshotLocked(path)
	if err == nil {
		m.subs[sub] = struct{}{}
		// Offered under the lock so a concurrent write cannot be overtaken by this older snapshot.
		sub.offer(snapshot)
	}
	m.mu.Unlock()

	if err != nil {
		sub.Close()

		return nil, err
	}

	return sub, nil
}

// Set implements repository.RealtimeStore.
func (m *MemoryStore) Set(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	segments, err := checkPath(path)
	if err != nil {
		return err
	}

	normalized, err := normalize(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	m.writeLocked(segments, normalized)
	m.publishLocked([]string{path})

	return nil
}

// Update implements repository.RealtimeStore.
func (m *MemoryStore) Update(ctx context.Context, values map[string]any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	if len(values) == 0 {
		return nil
	}

	paths := slices.Sorted(maps.Keys(values))
	segments := make(map[string][]string, len(paths))
	normalized := make(map[string]any, len(paths))
	for i, path := range paths {
		segs, err := checkPath(path)
		if err != nil {
			return err
		}
		if i > 0 && isAncestor(paths[i-1], path) {
			return errors.Wrapf(repository.ErrInvalidPath, "update paths %q and %q overlap", paths[i-1], path)
		}

		value, err := normalize(values[path])
		if err != nil {
			return err
		}
		segments[path] = segs
		normalized[path] = value
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	for _, path := range paths {
		m.writeLocked(segments[path], normalized[path])
	}
	m.publishLocked(paths)

	return nil
}

// Remove implements repository.RealtimeStore.
func (m *MemoryStore) Remove(ctx context.Context, path string) error {
	return m.Set(ctx, path, nil)
}

// Push implements repository.RealtimeStore.
func (m *MemoryStore) Push(ctx context.Context, collection string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	if _, err := checkPath(collection); err != nil {
		return "", err
	}

	return m.pushIDs.Next(), nil
}

// Transaction implements repository.RealtimeStore. The function runs under the store lock,
// so it must not call back into the store.
func (m *MemoryStore) Transaction(ctx context.Context, path string, fn repository.TransactionFunc) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	segments, err := checkPath(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	var current json.RawMessage
	if node, ok := lookup(m.root, segments); ok {
		current, err = json.Marshal(node)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	var value any
	if len(next) > 0 {
		if err := json.Unmarshal(next, &value); err != nil {
			return errors.Wrap(err, "decode transaction result")
		}
	}

	m.writeLocked(segments, value)
	m.publishLocked([]string{path})

	return nil
}

// Get decodes the value at path into v. It reports false when the path is absent.
func (m *MemoryStore) Get(path string, v any) (bool, error) {
	m.mu.Lock()
	node, ok := lookup(m.root, repository.SplitPath(path))
	var raw []byte
	var err error
	if ok {
		raw, err = json.Marshal(node)
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err != nil {
		return false, errors.WithStack(err)
	}

	return true, errors.WithStack(json.Unmarshal(raw, v))
}

// FailWrites makes every following write return err. Passing nil restores normal writes.
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeErr = err
}

// FailSubscriptions terminates every live subscription with err.
func (m *MemoryStore) FailSubscriptions(err error) {
	m.mu.Lock()
	subs := slices.Collect(maps.Keys(m.subs))
	clear(m.subs)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.fail(err)
	}
}

func (m *MemoryStore) writeLocked(segments []string, value any) {
	if value == nil {
		removeNode(m.root, segments)

		return
	}

	node := m.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[segment] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
}

// publishLocked offers a fresh snapshot to every subscriber whose collection overlaps a written path.
func (m *MemoryStore) publishLocked(written []string) {
	for sub := range m.subs {
		touched := slices.ContainsFunc(written, func(path string) bool {
			return isAncestor(sub.path, path) || isAncestor(path, sub.path)
		})
		if !touched {
			continue
		}

		snapshot, err := m.snapshotLocked(sub.path)
		if err != nil {
			m.logger.Error("Failed to build snapshot", slog.String("path", sub.path), slog.Any("error", err))

			continue
		}
		sub.offer(snapshot)
	}
}

func (m *MemoryStore) snapshotLocked(path string) (repository.Snapshot, error) {
	snapshot := repository.Snapshot{Path: path, Entries: []repository.Entry{}}

	node, ok := lookup(m.root, repository.SplitPath(path))
	if !ok {
		return snapshot, nil
	}
	children, ok := node.(map[string]any)
	if !ok {
		return snapshot, nil
	}

	keys := slices.Collect(maps.Keys(children))
	sortKeys(keys)
	for _, key := range keys {
		raw, err := json.Marshal(children[key])
		if err != nil {
			return repository.Snapshot{}, errors.WithStack(err)
		}
		snapshot.Entries = append(snapshot.Entries, repository.Entry{Key: key, Value: raw})
	}

	return snapshot, nil
}

func checkPath(path string) ([]string, error) {
	segments := repository.SplitPath(path)
	if len(segments) == 0 {
		return nil, errors.Wrapf(repository.ErrInvalidPath, "empty path %q", path)
	}
	for _, segment := range segments {
		if !repository.ValidKey(segment) {
			return nil, errors.Wrapf(repository.ErrInvalidPath, "segment %q in %q", segment, path)
		}
	}

	return segments, nil
}

// normalize converts a Go value into its decoded JSON form; nil means delete.
func normalize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrap(err, "encode value")
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrap(err, "decode value")
	}

	// Empty objects are not stored, matching the Realtime Database.
	if obj, ok := decoded.(map[string]any); ok && len(obj) == 0 {
		return nil, nil
	}

	return decoded, nil
}

func lookup(root map[string]any, segments []string) (any, bool) {
	var node any = root
	for _, segment := range segments {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}

	return node, true
}

// removeNode deletes the node and prunes parents left empty.
func removeNode(node map[string]any, segments []string) bool {
	if len(segments) == 1 {
		delete(node, segments[0])

		return len(node) == 0
	}

	child, ok := node[segments[0]].(map[string]any)
	if !ok {
		return len(node) == 0
	}
	if removeNode(child, segments[1:]) {
		delete(node, segments[0])
	}

	return len(node) == 0
}

// isAncestor reports whether parent equals path or contains it.
func isAncestor(parent, path string) bool {
	parent = strings.Trim(parent, "/")
	path = strings.Trim(path, "/")

	return parent == path || strings.HasPrefix(path, parent+"/")
}
