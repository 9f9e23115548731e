package service

import (
	"context"
)

// OrderEventType names an order lifecycle transition.
type OrderEventType string

const (
	OrderEventPlaced    OrderEventType = "order.placed"
	OrderEventCompleted OrderEventType = "order.completed"
	OrderEventDeleted   OrderEventType = "order.deleted"
)

// OrderEvent is published after an order write has been accepted by the store
type OrderEvent struct {
	RequestID   string         `json:"request_id,omitempty"` // For distributed tracing
	Type        OrderEventType `json:"type"`
	OrderID     string         `json:"order_id"`
	ProductID   string         `json:"product_id,omitempty"`
	ProductName string         `json:"product_name,omitempty"`
	Quantity    int            `json:"quantity,omitempty"`
	TotalPrice  float64        `json:"total_price,omitempty"`
	OccurredAt  int64          `json:"occurred_at"` // Unix milliseconds
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
