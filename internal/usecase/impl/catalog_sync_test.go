package impl

import (
	"context"
	"slices"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func startCatalog(t *testing.T, store repository.RealtimeStore) usecase.CatalogSync {
	t.Helper()

	catalog := NewCatalogSync(store, testLogger())
	require.NoError(t, catalog.Start(context.Background()))
	t.Cleanup(catalog.Stop)

	waitUntil(t, func() bool { return !catalog.Loading() })

	return catalog
}

func productIDs(products []entity.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	return ids
}

func TestCatalogSync_LoadingUntilFirstSnapshot(t *testing.T) {
	catalog := NewCatalogSync(newStore(), testLogger())

	assert.True(t, catalog.Loading())
	assert.Empty(t, catalog.Products())

	require.NoError(t, catalog.Start(context.Background()))
	defer catalog.Stop()

	waitUntil(t, func() bool { return !catalog.Loading() })
	assert.Empty(t, catalog.Products())
	assert.NoError(t, catalog.Err())
}

func TestCatalogSync_NewestFirst(t *testing.T) {
	store := newStore()
	seed(t, store, repository.ProductPath("-A1"), productRecordValue("Tea", 20000, nil))
	seed(t, store, repository.ProductPath("-A2"), productRecordValue("Coffee", 25000, nil))
	seed(t, store, repository.ProductPath("-A3"), productRecordValue("Cake", 30000, nil))

	catalog := startCatalog(t, store)

	assert.Equal(t, []string{"-A3", "-A2", "-A1"}, productIDs(catalog.Products()))
}

func TestCatalogSync_BackfillsLegacyRecordLocally(t *testing.T) {
	store := newStore()
	seed(t, store, repository.ProductPath("-A1"), map[string]any{"name": "Tea", "price": 20000, "timestamp": 1_700_000_000_000})

	catalog := startCatalog(t, store)

	product, ok := catalog.Product("-A1")
	require.True(t, ok)
	assert.Zero(t, product.RatingTotal)
	assert.Zero(t, product.RatingCount)
	assert.Empty(t, product.RatedBy)
	assert.Equal(t, entity.RatingSummary{Average: entity.DefaultAverageRating}, product.Summary())

	var stored map[string]any
	_, err := store.Get(repository.ProductPath("-A1"), &stored)
	require.NoError(t, err)
	assert.NotContains(t, stored, repository.FieldRatingTotal)
	assert.NotContains(t, stored, repository.FieldRatingCount)
}

func TestCatalogSync_DecodesOnlyChangedRecords(t *testing.T) {
	store := newStore()
	ctx := context.Background()
	seed(t, store, repository.ProductPath("-A1"), productRecordValue("Tea", 20000, nil))
	seed(t, store, repository.ProductPath("-A2"), productRecordValue("Coffee", 25000, nil))
	seed(t, store, repository.ProductPath("-A3"), productRecordValue("Cake", 30000, nil))

	catalog := startCatalog(t, store)
	assert.Equal(t, 3, catalog.Stats().Decoded)

	require.NoError(t, store.Set(ctx, "products/-A2/name", "Iced coffee"))

	waitUntil(t, func() bool {
		p, _ := catalog.Product("-A2")

		return p.Name == "Iced coffee"
	})
	assert.Equal(t, 4, catalog.Stats().Decoded)
	assert.Equal(t, []string{"-A3", "-A2", "-A1"}, productIDs(catalog.Products()))

	require.NoError(t, store.Remove(ctx, repository.ProductPath("-A1")))

	waitUntil(t, func() bool { return len(catalog.Products()) == 2 })
	assert.Equal(t, 4, catalog.Stats().Decoded)
	assert.Equal(t, []string{"-A3", "-A2"}, productIDs(catalog.Products()))
}

func TestCatalogSync_WatchReportsDiff(t *testing.T) {
	store := newStore()
	seed(t, store, repository.ProductPath("-A1"), productRecordValue("Tea", 20000, nil))
	catalog := startCatalog(t, store)

	changes, unwatch := catalog.Watch()
	defer unwatch()

	seed(t, store, repository.ProductPath("-A2"), productRecordValue("Coffee", 25000, nil))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case change := <-changes:
			if slices.Contains(change.Added, "-A2") {
				assert.Empty(t, change.Removed)
				assert.NotContains(t, change.Changed, "-A1")
				assert.Positive(t, change.Version)

				return
			}
		case <-deadline:
			require.FailNow(t, "no change reported for -A2")
		}
	}
}

func TestCatalogSync_SkipsMalformedRecords(t *testing.T) {
	store := newStore()
	seed(t, store, repository.ProductPath("-A1"), productRecordValue("Tea", 20000, nil))
	seed(t, store, repository.ProductPath("-A2"), "garbage")
	seed(t, store, repository.ProductPath("-A3"), map[string]any{"name": "Cake", "price": "expensive"})

	catalog := startCatalog(t, store)

	assert.Equal(t, []string{"-A1"}, productIDs(catalog.Products()))
	assert.Equal(t, 2, catalog.Stats().Skipped)
	assert.NoError(t, catalog.Err())
}

func TestCatalogSync_ProductsAreCopies(t *testing.T) {
	store := newStore()
	seed(t, store, repository.ProductPath("-A1"), productRecordValue("Tea", 20000, map[string]int{"id-A": 5}))
	catalog := startCatalog(t, store)

	products := catalog.Products()
	products[0].RatedBy["id-B"] = 1
	products[0].Name = "changed"

	product, ok := catalog.Product("-A1")
	require.True(t, ok)
	assert.Equal(t, "Tea", product.Name)
	assert.Equal(t, map[string]int{"id-A": 5}, product.RatedBy)
}

func TestCatalogSync_SubscriptionErrorIsTerminal(t *testing.T) {
	store := newStore()
	seed(t, store, repository.ProductPath("-A1"), productRecordValue("Tea", 20000, nil))
	catalog := startCatalog(t, store)

	store.FailSubscriptions(repository.ErrStoreUnavailable)

	select {
	case <-catalog.Done():
	case <-time.After(2 * time.Second):
		require.FailNow(t, "engine did not stop")
	}
	assert.ErrorIs(t, catalog.Err(), repository.ErrStoreUnavailable)
	assert.Equal(t, []string{"-A1"}, productIDs(catalog.Products()))

	// No resubscription: later writes are not observed.
	seed(t, store, repository.ProductPath("-A2"), productRecordValue("Coffee", 25000, nil))
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, catalog.Products(), 1)
}

func TestCatalogSync_StopIsClean(t *testing.T) {
	catalog := startCatalog(t, newStore())

	catalog.Stop()

	select {
	case <-catalog.Done():
	default:
		require.FailNow(t, "Done not closed after Stop")
	}
	assert.NoError(t, catalog.Err())
}

func TestCatalogSync_StartTwice(t *testing.T) {
	catalog := startCatalog(t, newStore())

	assert.Error(t, catalog.Start(context.Background()))
}

func TestCatalogSync_SubscribeFailure(t *testing.T) {
	store := mockRepo.NewMockRealtimeStore(t)
	store.EXPECT().
		Subscribe(mock.Anything, repository.ProductsPath).
		Return(nil, errors.Wrap(repository.ErrStoreUnavailable, "permission denied"))

	catalog := NewCatalogSync(store, testLogger())

	err := catalog.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
	assert.ErrorIs(t, catalog.Err(), repository.ErrStoreUnavailable)
	assert.True(t, catalog.Loading())

	select {
	case <-catalog.Done():
	default:
		require.FailNow(t, "Done not closed after failed Start")
	}
}

func TestCatalogSync_ContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	catalog := NewCatalogSync(newStore(), testLogger())
	require.NoError(t, catalog.Start(ctx))

	cancel()

	select {
	case <-catalog.Done():
	case <-time.After(2 * time.Second):
		require.FailNow(t, "engine did not stop after cancel")
	}
	assert.NoError(t, catalog.Err())
}

func TestCatalogSync_SubscriptionTerminatesAfterSnapshot(t *testing.T) {
	snapshots := make(chan repository.Snapshot, 1)
	snapshots <- repository.Snapshot{
		Path: repository.ProductsPath,
		Entries: []repository.Entry{
			{Key: "p1", Value: []byte(`{"name":"Tea","price":2.5,"createdAt":1717000000000}`)},
		},
	}
	close(snapshots)

	sub := mockRepo.NewMockSubscription(t)
	sub.EXPECT().Snapshots().Return(snapshots)
	sub.EXPECT().Err().Return(errors.Wrap(repository.ErrStoreUnavailable, "poll failed"))
	sub.EXPECT().Close().Return().Maybe()

	store := mockRepo.NewMockRealtimeStore(t)
	store.EXPECT().Subscribe(mock.Anything, repository.ProductsPath).Return(sub, nil)

	catalog := NewCatalogSync(store, testLogger())
	require.NoError(t, catalog.Start(context.Background()))

	select {
	case <-catalog.Done():
	case <-time.After(2 * time.Second):
		require.FailNow(t, "engine did not terminate with its subscription")
	}

	assert.ErrorIs(t, catalog.Err(), repository.ErrStoreUnavailable)
	assert.False(t, catalog.Loading())
	assert.Equal(t, []string{"p1"}, productIDs(catalog.Products()))
	catalog.Stop()
}
