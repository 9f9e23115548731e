package impl

import (
	"log/slog"
	"slices"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
)

type orderSync struct {
	*syncEngine[entity.Order]

	// partition is recomputed under the engine lock on every applied snapshot.
	partition entity.OrderPartition
}

// NewOrderSync creates the order collection sync engine
func NewOrderSync(store repository.RealtimeStore, logger *slog.Logger) usecase.OrderSync {
	s := &orderSync{
		syncEngine: newSyncEngine("orders", repository.OrdersPath, store, decodeOrder, identityClone[entity.Order], logger),
		partition:  entity.PartitionOrders(nil),
	}
	s.onApply = func(orders []entity.Order) {
		s.partition = entity.PartitionOrders(orders)
	}

	return s
}

// Orders implements usecase.OrderSync.
func (s *orderSync) Orders() []entity.Order {
	return s.list()
}

// Order implements usecase.OrderSync.
func (s *orderSync) Order(id string) (entity.Order, bool) {
	return s.get(id)
}

// Pending implements usecase.OrderSync.
func (s *orderSync) Pending() []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.partition.Pending)
}

// Resolved implements usecase.OrderSync.
func (s *orderSync) Resolved() []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.partition.Resolved)
}

func identityClone[T any](v T) T {
	return v
}
