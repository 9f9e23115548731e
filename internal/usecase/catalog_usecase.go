package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CatalogSync materializes the product collection, newest first.
type CatalogSync interface {
	SyncEngine

	// Products returns a copy of the current catalog, newest first.
	Products() []entity.Product

	// Product returns a copy of one product.
	Product(id string) (entity.Product, bool)
}

// CatalogUsecase defines operator actions on the catalog
type CatalogUsecase interface {
	// CreateProduct uploads the image and adds the product with an empty rating.
	CreateProduct(ctx context.Context, input *entity.NewProduct) (*entity.Product, error)

	// ShareQR returns a PNG QR code linking to the product page.
	ShareQR(ctx context.Context, productID string) ([]byte, error)
}
