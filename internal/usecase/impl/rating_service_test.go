package impl

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRatingService(t *testing.T, store repository.RealtimeStore, strategy string) usecase.RatingUsecase {
	t.Helper()

	svc, err := NewRatingService(store, strategy, testLogger())
	require.NoError(t, err)

	return svc
}

// seedRatedProduct stores a product and returns the copy a client would hold.
func seedRatedProduct(t *testing.T, store repository.RealtimeStore, id string, ratedBy map[string]int) entity.Product {
	t.Helper()

	seed(t, store, repository.ProductPath(id), productRecordValue("Tea", 20000, ratedBy))

	raw, err := json.Marshal(productRecordValue("Tea", 20000, ratedBy))
	require.NoError(t, err)
	product, err := decodeProduct(id, raw)
	require.NoError(t, err)

	return product
}

func storedProduct(t *testing.T, store interface {
	Get(path string, v any) (bool, error)
}, id string) entity.Product {
	t.Helper()

	var record productRecord
	found, err := store.Get(repository.ProductPath(id), &record)
	require.NoError(t, err)
	require.True(t, found)

	return record.toDomain(id)
}

func TestNewRatingService_Strategy(t *testing.T) {
	store := mockRepo.NewMockRealtimeStore(t)

	_, err := NewRatingService(store, "", testLogger())
	assert.NoError(t, err)
	_, err = NewRatingService(store, constants.RatingStrategyMultiPath, testLogger())
	assert.NoError(t, err)
	_, err = NewRatingService(store, "optimistic", testLogger())
	assert.Error(t, err)
}

func TestRatingService_RejectsInvalidInputWithoutWriting(t *testing.T) {
	// The mock has no expectations: any store call fails the test.
	store := mockRepo.NewMockRealtimeStore(t)
	product := entity.Product{ID: "-P1", RatedBy: map[string]int{}}

	for _, strategy := range []string{constants.RatingStrategyTransaction, constants.RatingStrategyMultiPath} {
		svc := newRatingService(t, store, strategy)

		tests := []struct {
			name     string
			identity entity.Identity
			stars    int
			want     error
		}{
			{name: "zero stars", identity: "id-A", stars: 0, want: domainerrors.ErrInvalidRating},
			{name: "six stars", identity: "id-A", stars: 6, want: domainerrors.ErrInvalidRating},
			{name: "negative stars", identity: "id-A", stars: -1, want: domainerrors.ErrInvalidRating},
			{name: "empty identity", identity: "", stars: 3, want: domainerrors.ErrMissingIdentity},
			{name: "identity with path separator", identity: "a/b", stars: 3, want: domainerrors.ErrValidationFailed},
		}

		for _, tt := range tests {
			t.Run(strategy+"/"+tt.name, func(t *testing.T) {
				result, err := svc.Rate(context.Background(), product, tt.identity, tt.stars)

				assert.Nil(t, result)
				assert.ErrorIs(t, err, tt.want)
				assert.True(t, domainerrors.IsValidation(err))
			})
		}
	}
}

func TestRatingService_AlreadyRatedIsNoOp(t *testing.T) {
	store := mockRepo.NewMockRealtimeStore(t)
	product := entity.Product{ID: "-P1", RatingTotal: 4, RatingCount: 1, RatedBy: map[string]int{"id-A": 4}}

	for _, strategy := range []string{constants.RatingStrategyTransaction, constants.RatingStrategyMultiPath} {
		t.Run(strategy, func(t *testing.T) {
			svc := newRatingService(t, store, strategy)

			result, err := svc.Rate(context.Background(), product, "id-A", 1)

			require.NoError(t, err)
			assert.False(t, result.Accepted)
			assert.Equal(t, entity.RatingAggregate{Total: 4, Count: 1, RatedBy: map[string]int{"id-A": 4}}, result.Aggregate)
		})
	}
}

func TestRatingService_Accepts(t *testing.T) {
	for _, strategy := range []string{constants.RatingStrategyTransaction, constants.RatingStrategyMultiPath} {
		t.Run(strategy, func(t *testing.T) {
			store := newStore()
			product := seedRatedProduct(t, store, "-P1", map[string]int{"id-B": 5})
			svc := newRatingService(t, store, strategy)

			result, err := svc.Rate(context.Background(), product, "id-A", 3)

			require.NoError(t, err)
			assert.True(t, result.Accepted)
			assert.Equal(t, entity.RatingAggregate{Total: 8, Count: 2, RatedBy: map[string]int{"id-A": 3, "id-B": 5}}, result.Aggregate)

			stored := storedProduct(t, store, "-P1")
			assert.Equal(t, 8, stored.RatingTotal)
			assert.Equal(t, 2, stored.RatingCount)
			assert.Equal(t, map[string]int{"id-A": 3, "id-B": 5}, stored.RatedBy)
			assert.True(t, stored.ConsistentRatings())
			assert.Equal(t, "Tea", stored.Name)
			assert.Equal(t, 20000.0, stored.Price)

			// The caller's copy is untouched.
			assert.Equal(t, 5, product.RatingTotal)
			assert.False(t, product.HasRated("id-A"))

			// Optimistic refresh gives the same summary the next snapshot will.
			refreshed := product.WithAggregate(result.Aggregate)
			assert.Equal(t, stored.Summary(), refreshed.Summary())
		})
	}
}

func TestRatingService_FirstRatingOnLegacyProduct(t *testing.T) {
	store := newStore()
	seed(t, store, repository.ProductPath("-P1"), map[string]any{"name": "Tea", "price": 20000, "timestamp": 1_700_000_000_000})
	product := entity.Product{ID: "-P1", Name: "Tea", Price: 20000, RatedBy: map[string]int{}}
	svc := newRatingService(t, store, constants.RatingStrategyTransaction)

	result, err := svc.Rate(context.Background(), product, "id-A", 5)

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, 5, result.Aggregate.Total)
	assert.Equal(t, 1, result.Aggregate.Count)

	stored := storedProduct(t, store, "-P1")
	assert.Equal(t, entity.RatingSummary{Average: 5, Count: 1, Rated: true}, stored.Summary())
}

func TestRatingService_MultiPathWritesExactlyThreePaths(t *testing.T) {
	store := mockRepo.NewMockRealtimeStore(t)
	product := entity.Product{ID: "-P1", RatingTotal: 5, RatingCount: 2, RatedBy: map[string]int{"id-B": 2, "id-C": 3}}
	svc := newRatingService(t, store, constants.RatingStrategyMultiPath)

	store.EXPECT().
		Update(mock.Anything, map[string]interface{}{
			"products/-P1/ratingTotal":   9,
			"products/-P1/ratingCount":   3,
			"products/-P1/ratedBy/id-A": 4,
		}).
		Return(nil)

	result, err := svc.Rate(context.Background(), product, "id-A", 4)

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, 9, result.Aggregate.Total)
	assert.Len(t, product.RatedBy, 2)
}

func TestRatingService_TransactionCountsIdentityOnce(t *testing.T) {
	store := newStore()
	product := seedRatedProduct(t, store, "-P1", nil)
	svc := newRatingService(t, store, constants.RatingStrategyTransaction)

	const callers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Every caller holds the same stale copy without id-A.
			result, err := svc.Rate(context.Background(), product, "id-A", 4)
			if !assert.NoError(t, err) {
				return
			}
			if result.Accepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	stored := storedProduct(t, store, "-P1")
	assert.Equal(t, 4, stored.RatingTotal)
	assert.Equal(t, 1, stored.RatingCount)
	assert.True(t, stored.ConsistentRatings())
}

func TestRatingService_TransactionSeesStoredRating(t *testing.T) {
	store := newStore()
	seedRatedProduct(t, store, "-P1", map[string]int{"id-A": 2})
	// A stale copy from before id-A rated.
	stale := entity.Product{ID: "-P1", RatedBy: map[string]int{}}
	svc := newRatingService(t, store, constants.RatingStrategyTransaction)

	result, err := svc.Rate(context.Background(), stale, "id-A", 5)

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, entity.RatingAggregate{Total: 2, Count: 1, RatedBy: map[string]int{"id-A": 2}}, result.Aggregate)
	assert.Equal(t, 2, storedProduct(t, store, "-P1").RatingTotal)
}

func TestRatingService_TransactionMissingProduct(t *testing.T) {
	store := newStore()
	svc := newRatingService(t, store, constants.RatingStrategyTransaction)

	result, err := svc.Rate(context.Background(), entity.Product{ID: "-gone"}, "id-A", 5)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	found, getErr := store.Get(repository.ProductPath("-gone"), new(any))
	require.NoError(t, getErr)
	assert.False(t, found)
}

func TestRatingService_WriteFailure(t *testing.T) {
	for _, strategy := range []string{constants.RatingStrategyTransaction, constants.RatingStrategyMultiPath} {
		t.Run(strategy, func(t *testing.T) {
			store := newStore()
			product := seedRatedProduct(t, store, "-P1", map[string]int{"id-B": 5})
			store.FailWrites(errors.Wrap(repository.ErrStoreUnavailable, "permission denied"))
			svc := newRatingService(t, store, strategy)

			result, err := svc.Rate(context.Background(), product, "id-A", 3)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
			assert.True(t, domainerrors.IsStoreWrite(err))
			assert.False(t, domainerrors.IsValidation(err))
			assert.False(t, product.HasRated("id-A"))
			assert.Equal(t, 5, product.RatingTotal)
		})
	}
}

func TestRatingService_CancelledContext(t *testing.T) {
	store := mockRepo.NewMockRealtimeStore(t)
	svc := newRatingService(t, store, constants.RatingStrategyTransaction)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Rate(ctx, entity.Product{ID: "-P1"}, "id-A", 3)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRatingService_UserRating(t *testing.T) {
	svc := newRatingService(t, mockRepo.NewMockRealtimeStore(t), "")
	product := entity.Product{ID: "-P1", RatedBy: map[string]int{"id-A": 4}}

	assert.Equal(t, 4, svc.UserRating(product, "id-A"))
	assert.Equal(t, 0, svc.UserRating(product, "id-B"))
}
