package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/go-playground/validator/v10"
)

type orderService struct {
	store     repository.RealtimeStore
	publisher service.EventPublisher
	notifier  service.OperatorNotifier
	validate  *validator.Validate
	clock     service.Clock
	logger    *slog.Logger
}

// NewOrderService creates a new order service instance.
// notifier may be nil when operator alerts are not configured.
func NewOrderService(
	store repository.RealtimeStore,
	publisher service.EventPublisher,
	notifier service.OperatorNotifier,
	clock service.Clock,
	logger *slog.Logger,
) usecase.OrderUsecase {
	if clock == nil {
		clock = service.SystemClock()
	}

	return &orderService{
		store:     store,
		publisher: publisher,
		notifier:  notifier,
		validate:  util.NewValidator(),
		clock:     clock,
		logger:    logger,
	}
}

// PlaceOrder implements usecase.OrderUsecase.
func (s *orderService) PlaceOrder(ctx context.Context, product entity.Product, customer entity.CustomerInfo, quantity int) (*entity.Order, error) {
	if quantity < 1 {
		return nil, domainerrors.ErrInvalidQuantity.WithDetails(fmt.Sprintf("got %d", quantity))
	}
	if err := s.validate.Struct(customer); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	if !repository.ValidKey(product.ID) {
		return nil, domainerrors.ErrProductNotFound.WithDetails(product.ID)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	id, err := s.store.Push(ctx, repository.OrdersPath)
	if err != nil {
		return nil, domainerrors.NewStoreWriteError(err, "allocate order id")
	}

	order := &entity.Order{
		ID:           id,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.ImageURL,
		UnitPrice:    product.Price,
		Quantity:     quantity,
		TotalPrice:   product.Price * float64(quantity),
		CustomerName: customer.Name,
		Phone:        customer.Phone,
		Address:      customer.Address,
		Status:       entity.OrderStatusPending,
		CreatedAt:    s.clock(),
	}

	if err := s.store.Set(ctx, repository.OrderPath(id), orderFromDomain(order)); err != nil {
		return nil, domainerrors.NewStoreWriteError(err, "write order "+id)
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Order placed",
		slog.String("order_id", id),
		slog.String("product_id", product.ID),
		slog.Int("quantity", quantity),
	)

	s.publish(ctx, &service.OrderEvent{
		Type:        service.OrderEventPlaced,
		OrderID:     id,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		TotalPrice:  order.TotalPrice,
	})
	s.alertOperators(ctx, order)

	return order, nil
}

// Complete implements usecase.OrderUsecase. The status is overwritten without looking at the
// previous value, but an order deleted in the meantime is not recreated.
func (s *orderService) Complete(ctx context.Context, orderID string) error {
	if !repository.ValidKey(orderID) {
		return domainerrors.ErrOrderNotFound.WithDetails(orderID)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("complete order: %w", err)
	}

	existed, malformed := false, false
	err := s.store.Transaction(ctx, repository.OrderPath(orderID), func(current json.RawMessage) (json.RawMessage, error) {
		existed = current != nil
		malformed = false
		if current == nil {
			return nil, nil
		}

		var node map[string]json.RawMessage
		if err := json.Unmarshal(current, &node); err != nil || node == nil {
			// Not an order record; leave it as it is.
			malformed = true

			return current, nil
		}
		node[repository.FieldStatus] = json.RawMessage(strconv.Quote(entity.OrderStatusCompleted.String()))

		return json.Marshal(node)
	})
	if err != nil {
		return domainerrors.NewStoreWriteError(err, "complete order "+orderID)
	}

	if !existed {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Order already removed, nothing to complete", slog.String("order_id", orderID))

		return nil
	}
	if malformed {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("Order node is not a record, left unchanged", slog.String("order_id", orderID))

		return nil
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Order completed", slog.String("order_id", orderID))

	s.publish(ctx, &service.OrderEvent{
		Type:    service.OrderEventCompleted,
		OrderID: orderID,
	})

	return nil
}

// Delete implements usecase.OrderUsecase.
func (s *orderService) Delete(ctx context.Context, orderID string) error {
	if !repository.ValidKey(orderID) {
		return domainerrors.ErrOrderNotFound.WithDetails(orderID)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if err := s.store.Remove(ctx, repository.OrderPath(orderID)); err != nil {
		return domainerrors.NewStoreWriteError(err, "delete order "+orderID)
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Order deleted", slog.String("order_id", orderID))

	s.publish(ctx, &service.OrderEvent{
		Type:    service.OrderEventDeleted,
		OrderID: orderID,
	})

	return nil
}

// publish sends an order event. The write has already been committed, so a failure is
// only logged.
func (s *orderService) publish(ctx context.Context, event *service.OrderEvent) {
	if s.publisher == nil {
		return
	}

	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	event.OccurredAt = s.clock().UnixMilli()

	if err := s.publisher.PublishOrderEvent(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("Failed to publish order event",
			slog.String("type", string(event.Type)),
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)
	}
}

func (s *orderService) alertOperators(ctx context.Context, order *entity.Order) {
	if s.notifier == nil {
		return
	}

	title := "New order"
	body := fmt.Sprintf("%s x%d for %s", order.ProductName, order.Quantity, order.CustomerName)
	data := map[string]string{
		"order_id":   order.ID,
		"product_id": order.ProductID,
		"quantity":   strconv.Itoa(order.Quantity),
	}

	if err := s.notifier.NotifyOperators(context.WithoutCancel(ctx), title, body, data); err != nil {
		s.logger.Warn("Failed to alert operators",
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
	}
}
