package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// errAlreadyRated aborts a rating transaction that found the identity in ratedBy.
var errAlreadyRated = errors.New("identity already rated")

type ratingService struct {
	store    repository.RealtimeStore
	strategy string
	logger   *slog.Logger
}

// NewRatingService creates a rating service using the given write strategy.
// An empty strategy selects the transactional protocol.
func NewRatingService(store repository.RealtimeStore, strategy string, logger *slog.Logger) (usecase.RatingUsecase, error) {
	switch strategy {
	case "":
		strategy = constants.RatingStrategyTransaction
	case constants.RatingStrategyTransaction, constants.RatingStrategyMultiPath:
	default:
		return nil, errors.Errorf("unknown rating strategy: %s", strategy)
	}

	return &ratingService{
		store:    store,
		strategy: strategy,
		logger:   logger,
	}, nil
}

// Rate implements usecase.RatingUsecase.
func (s *ratingService) Rate(ctx context.Context, product entity.Product, identity entity.Identity, stars int) (*entity.RatingResult, error) {
	if !entity.ValidStars(stars) {
		return nil, domainerrors.ErrInvalidRating.WithDetails(fmt.Sprintf("got %d", stars))
	}
	if identity.IsZero() {
		return nil, domainerrors.ErrMissingIdentity
	}
	if !repository.ValidKey(identity.String()) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("identity contains characters not allowed in keys")
	}
	if !repository.ValidKey(product.ID) {
		return nil, domainerrors.ErrProductNotFound.WithDetails(product.ID)
	}

	if product.HasRated(identity) {
		return &entity.RatingResult{Aggregate: product.Aggregate(), Accepted: false}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rate product %s: %w", product.ID, err)
	}

	if s.strategy == constants.RatingStrategyMultiPath {
		return s.rateMultiPath(ctx, &product, identity, stars)
	}

	return s.rateTransaction(ctx, &product, identity, stars)
}

// UserRating implements usecase.RatingUsecase.
func (s *ratingService) UserRating(product entity.Product, identity entity.Identity) int {
	return product.UserRating(identity)
}

// rateMultiPath trusts the caller's copy of the product and writes the three rating fields
// in one multi-path update. Two concurrent calls from one identity can both be counted.
func (s *ratingService) rateMultiPath(ctx context.Context, product *entity.Product, identity entity.Identity, stars int) (*entity.RatingResult, error) {
	agg := product.Aggregate()
	if agg.RatedBy == nil {
		agg.RatedBy = map[string]int{}
	}
	agg.Total += stars
	agg.Count++
	agg.RatedBy[identity.String()] = stars

	totalPath, countPath, ratedByPath := repository.RatingPaths(product.ID, identity.String())
	err := s.store.Update(ctx, map[string]any{
		totalPath:   agg.Total,
		countPath:   agg.Count,
		ratedByPath: stars,
	})
	if err != nil {
		return nil, domainerrors.NewStoreWriteError(err, "rate product "+product.ID)
	}

	s.logger.Debug("Rating accepted",
		slog.String("product_id", product.ID),
		slog.String("strategy", s.strategy),
		slog.Int("stars", stars),
	)

	return &entity.RatingResult{Aggregate: agg, Accepted: true}, nil
}

// rateTransaction re-checks ratedBy against the stored record and writes only when the
// identity is still absent, so one identity is counted once even under concurrent calls.
func (s *ratingService) rateTransaction(ctx context.Context, product *entity.Product, identity entity.Identity, stars int) (*entity.RatingResult, error) {
	var result entity.RatingResult

	err := s.store.Transaction(ctx, repository.ProductPath(product.ID), func(current json.RawMessage) (json.RawMessage, error) {
		if current == nil {
			return nil, domainerrors.ErrProductNotFound.WithDetails(product.ID)
		}

		node, agg, err := decodeRatingNode(current)
		if err != nil {
			return nil, domainerrors.ErrProductNotFound.WithDetails("malformed record " + product.ID)
		}

		if _, ok := agg.RatedBy[identity.String()]; ok {
			result = entity.RatingResult{Aggregate: agg, Accepted: false}

			return nil, errAlreadyRated
		}

		agg.Total += stars
		agg.Count++
		agg.RatedBy[identity.String()] = stars

		if err := encodeRatingNode(node, agg); err != nil {
			return nil, err
		}
		result = entity.RatingResult{Aggregate: agg, Accepted: true}

		return json.Marshal(node)
	})

	switch {
	case err == nil:
		s.logger.Debug("Rating accepted",
			slog.String("product_id", product.ID),
			slog.String("strategy", s.strategy),
			slog.Int("stars", stars),
		)

		return &result, nil
	case errors.Is(err, errAlreadyRated):
		return &result, nil
	case errors.Is(err, domainerrors.ErrProductNotFound):
		return nil, err
	default:
		return nil, domainerrors.NewStoreWriteError(err, "rate product "+product.ID)
	}
}

// decodeRatingNode reads the rating fields of a product record and keeps the other fields
// untouched for the write back.
func decodeRatingNode(raw json.RawMessage) (map[string]json.RawMessage, entity.RatingAggregate, error) {
	var node map[string]json.RawMessage
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, entity.RatingAggregate{}, errors.WithStack(err)
	}
	if node == nil {
		return nil, entity.RatingAggregate{}, errors.New("record is not an object")
	}

	agg := entity.RatingAggregate{RatedBy: map[string]int{}}
	fields := map[string]any{
		repository.FieldRatingTotal: &agg.Total,
		repository.FieldRatingCount: &agg.Count,
		repository.FieldRatedBy:     &agg.RatedBy,
	}
	for field, target := range fields {
		value, ok := node[field]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, target); err != nil {
			return nil, entity.RatingAggregate{}, errors.Wrapf(err, "decode %s", field)
		}
	}
	if agg.RatedBy == nil {
		agg.RatedBy = map[string]int{}
	}

	return node, agg, nil
}

func encodeRatingNode(node map[string]json.RawMessage, agg entity.RatingAggregate) error {
	values := map[string]any{
		repository.FieldRatingTotal: agg.Total,
		repository.FieldRatingCount: agg.Count,
		repository.FieldRatedBy:     maps.Clone(agg.RatedBy),
	}
	for field, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return errors.Wrapf(err, "encode %s", field)
		}
		node[field] = raw
	}

	return nil
}
