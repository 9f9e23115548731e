package impl

import (
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
)

type catalogSync struct {
	*syncEngine[entity.Product]
}

// NewCatalogSync creates the product collection sync engine
func NewCatalogSync(store repository.RealtimeStore, logger *slog.Logger) usecase.CatalogSync {
	return &catalogSync{
		syncEngine: newSyncEngine("catalog", repository.ProductsPath, store, decodeProduct, entity.Product.Clone, logger),
	}
}

// Products implements usecase.CatalogSync.
func (c *catalogSync) Products() []entity.Product {
	return c.list()
}

// Product implements usecase.CatalogSync.
func (c *catalogSync) Product(id string) (entity.Product, bool) {
	return c.get(id)
}
