package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// RatingUsecase records one rating per identity per product.
type RatingUsecase interface {
	// Rate adds stars from identity to product. A repeat rating from the same identity is a
	// no-op reported with Accepted=false. The passed product is never mutated.
	Rate(ctx context.Context, product entity.Product, identity entity.Identity, stars int) (*entity.RatingResult, error)

	// UserRating returns the stars identity gave product, or 0.
	UserRating(product entity.Product, identity entity.Identity) int
}
