package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// OrderSync materializes the order collection, newest first, with its pending/resolved split.
type OrderSync interface {
	SyncEngine

	// Orders returns a copy of all orders, newest first.
	Orders() []entity.Order

	// Order returns a copy of one order.
	Order(id string) (entity.Order, bool)

	// Pending returns the orders with status pending, newest first.
	Pending() []entity.Order

	// Resolved returns every order that is not pending, newest first.
	Resolved() []entity.Order
}

// OrderUsecase defines the order lifecycle
type OrderUsecase interface {
	// PlaceOrder records a pending order for quantity units of product.
	PlaceOrder(ctx context.Context, product entity.Product, customer entity.CustomerInfo, quantity int) (*entity.Order, error)

	// Complete marks an order completed. Completing an absent order writes nothing.
	Complete(ctx context.Context, orderID string) error

	// Delete removes an order. Deleting an absent order succeeds.
	Delete(ctx context.Context, orderID string) error
}
