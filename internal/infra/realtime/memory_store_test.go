package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *MemoryStore {
	return NewMemoryStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func nextSnapshot(t *testing.T, sub repository.Subscription) repository.Snapshot {
	t.Helper()

	select {
	case snapshot, ok := <-sub.Snapshots():
		require.True(t, ok, "subscription closed unexpectedly")

		return snapshot
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for snapshot")
	}

	return repository.Snapshot{}
}

func keysOf(snapshot repository.Snapshot) []string {
	keys := make([]string, 0, len(snapshot.Entries))
	for _, entry := range snapshot.Entries {
		keys = append(keys, entry.Key)
	}

	return keys
}

func TestMemoryStore_SubscribeDeliversInitialSnapshot(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "products/p1", map[string]any{"name": "Tea"}))

	sub, err := store.Subscribe(ctx, repository.ProductsPath)
	require.NoError(t, err)
	defer sub.Close()

	snapshot := nextSnapshot(t, sub)
	assert.Equal(t, repository.ProductsPath, snapshot.Path)
	require.Len(t, snapshot.Entries, 1)
	assert.Equal(t, "p1", snapshot.Entries[0].Key)
	assert.JSONEq(t, `{"name":"Tea"}`, string(snapshot.Entries[0].Value))
}

func TestMemoryStore_SubscribeEmptyCollection(t *testing.T) {
	store := newTestStore()

	sub, err := store.Subscribe(context.Background(), repository.OrdersPath)
	require.NoError(t, err)
	defer sub.Close()

	snapshot := nextSnapshot(t, sub)
	assert.Empty(t, snapshot.Entries)
	assert.NotNil(t, snapshot.Entries)
}

func TestMemoryStore_SubscribeInvalidPath(t *testing.T) {
	store := newTestStore()

	_, err := store.Subscribe(context.Background(), "/")

	assert.ErrorIs(t, err, repository.ErrInvalidPath)
}

func TestMemoryStore_WritesPublishToOverlappingSubscribers(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	products, err := store.Subscribe(ctx, repository.ProductsPath)
	require.NoError(t, err)
	defer products.Close()
	orders, err := store.Subscribe(ctx, repository.OrdersPath)
	require.NoError(t, err)
	defer orders.Close()

	nextSnapshot(t, products)
	nextSnapshot(t, orders)

	require.NoError(t, store.Set(ctx, "products/p1/name", "Tea"))

	snapshot := nextSnapshot(t, products)
	assert.Equal(t, []string{"p1"}, keysOf(snapshot))

	select {
	case <-orders.Snapshots():
		assert.Fail(t, "orders subscriber received an unrelated snapshot")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryStore_UpdateIsAtomic(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "products/p1", map[string]any{"name": "Tea", "ratingTotal": 0, "ratingCount": 0}))

	sub, err := store.Subscribe(ctx, repository.ProductsPath)
	require.NoError(t, err)
	defer sub.Close()
	nextSnapshot(t, sub)

	total, count, ratedBy := repository.RatingPaths("p1", "id-A")
	require.NoError(t, store.Update(ctx, map[string]any{total: 4, count: 1, ratedBy: 4}))

	snapshot := nextSnapshot(t, sub)
	require.Len(t, snapshot.Entries, 1)
	assert.JSONEq(t,
		`{"name":"Tea","ratingTotal":4,"ratingCount":1,"ratedBy":{"id-A":4}}`,
		string(snapshot.Entries[0].Value),
	)
}

func TestMemoryStore_UpdateRejectsOverlappingPaths(t *testing.T) {
	store := newTestStore()

	err := store.Update(context.Background(), map[string]any{
		"products/p1":      map[string]any{"name": "Tea"},
		"products/p1/name": "Coffee",
	})

	assert.ErrorIs(t, err, repository.ErrInvalidPath)
	found, getErr := store.Get("products/p1", new(map[string]any))
	require.NoError(t, getErr)
	assert.False(t, found)
}

func TestMemoryStore_RemovePrunesEmptyParents(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "orders/o1/status", "pending"))
	require.NoError(t, store.Remove(ctx, "orders/o1/status"))

	found, err := store.Get("orders", new(any))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_SetEmptyObjectDeletes(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "orders/o1", map[string]any{"status": "pending"}))
	require.NoError(t, store.Set(ctx, "orders/o1", map[string]any{}))

	found, err := store.Get("orders/o1", new(any))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_PushGeneratesOrderedKeys(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	first, err := store.Push(ctx, repository.OrdersPath)
	require.NoError(t, err)
	second, err := store.Push(ctx, repository.OrdersPath)
	require.NoError(t, err)

	assert.Less(t, first, second)

	// Push only allocates the key.
	found, err := store.Get(repository.OrderPath(first), new(any))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_Transaction(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	t.Run("sees absent node as nil and can keep it absent", func(t *testing.T) {
		err := store.Transaction(ctx, "orders/missing", func(current json.RawMessage) (json.RawMessage, error) {
			assert.Nil(t, current)

			return nil, nil
		})

		require.NoError(t, err)
		found, getErr := store.Get("orders/missing", new(any))
		require.NoError(t, getErr)
		assert.False(t, found)
	})

	t.Run("writes the returned value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "orders/o1", map[string]any{"status": "pending"}))

		err := store.Transaction(ctx, "orders/o1", func(current json.RawMessage) (json.RawMessage, error) {
			assert.JSONEq(t, `{"status":"pending"}`, string(current))

			return json.RawMessage(`{"status":"completed"}`), nil
		})
		require.NoError(t, err)

		var got map[string]string
		found, getErr := store.Get("orders/o1", &got)
		require.NoError(t, getErr)
		assert.True(t, found)
		assert.Equal(t, "completed", got["status"])
	})

	t.Run("function error aborts without writing", func(t *testing.T) {
		abort := errors.New("abort")

		err := store.Transaction(ctx, "orders/o1", func(json.RawMessage) (json.RawMessage, error) {
			return json.RawMessage(`{"status":"cancelled"}`), abort
		})

		assert.ErrorIs(t, err, abort)
		var got map[string]string
		_, getErr := store.Get("orders/o1", &got)
		require.NoError(t, getErr)
		assert.Equal(t, "completed", got["status"])
	})
}

func TestMemoryStore_FailWrites(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	store.FailWrites(repository.ErrStoreUnavailable)

	assert.ErrorIs(t, store.Set(ctx, "orders/o1/status", "pending"), repository.ErrStoreUnavailable)
	assert.ErrorIs(t, store.Update(ctx, map[string]any{"orders/o1/status": "pending"}), repository.ErrStoreUnavailable)

	store.FailWrites(nil)
	assert.NoError(t, store.Set(ctx, "orders/o1/status", "pending"))
}

func TestMemoryStore_FailSubscriptionsClosesFeed(t *testing.T) {
	store := newTestStore()

	sub, err := store.Subscribe(context.Background(), repository.ProductsPath)
	require.NoError(t, err)
	nextSnapshot(t, sub)

	store.FailSubscriptions(repository.ErrStoreUnavailable)

	select {
	case _, ok := <-sub.Snapshots():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "feed was not closed")
	}
	assert.ErrorIs(t, sub.Err(), repository.ErrStoreUnavailable)
}

func TestMemoryStore_CloseStopsDelivery(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	sub, err := store.Subscribe(ctx, repository.ProductsPath)
	require.NoError(t, err)
	nextSnapshot(t, sub)

	sub.Close()
	require.NoError(t, store.Set(ctx, "products/p1/name", "Tea"))

	for range sub.Snapshots() {
	}
	assert.ErrorIs(t, sub.Err(), repository.ErrSubscriptionClosed)
}

func TestMemoryStore_ContextCancelEndsSubscription(t *testing.T) {
	store := newTestStore()
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := store.Subscribe(ctx, repository.ProductsPath)
	require.NoError(t, err)
	nextSnapshot(t, sub)

	cancel()

	for range sub.Snapshots() {
	}
	assert.ErrorIs(t, sub.Err(), repository.ErrSubscriptionClosed)
}
