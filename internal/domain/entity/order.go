package entity

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending is the state of a freshly placed order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusCompleted is set by an operator; the record is retained.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled is admitted by the data model but no transition produces it.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the known values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsPending reports whether the order belongs to the pending partition.
func (s OrderStatus) IsPending() bool {
	return s == OrderStatusPending
}

// Order is a point-in-time purchase record. Product fields are copied at order time
// and never follow later product edits.
type Order struct {
	ID           string      `json:"id"`
	ProductID    string      `json:"product_id"`
	ProductName  string      `json:"product_name"`
	ProductImage string      `json:"product_image"`
	UnitPrice    float64     `json:"unit_price"`
	Quantity     int         `json:"quantity"`
	TotalPrice   float64     `json:"total_price"` // unitPrice*quantity at submission, persisted.
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// CustomerInfo is the contact data a customer submits with an order.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required,notblank"`
	Phone   string `json:"phone" validate:"required,notblank"`
	Address string `json:"address" validate:"required,notblank"`
}

// OrderPartition splits the order view by lifecycle state.
type OrderPartition struct {
	Pending  []Order `json:"pending"`
	Resolved []Order `json:"resolved"`
}

// PartitionOrders splits orders, preserving their relative order.
func PartitionOrders(orders []Order) OrderPartition {
	partition := OrderPartition{
		Pending:  make([]Order, 0),
		Resolved: make([]Order, 0),
	}
	for _, order := range orders {
		if order.Status.IsPending() {
			partition.Pending = append(partition.Pending, order)
		} else {
			partition.Resolved = append(partition.Resolved, order)
		}
	}

	return partition
}
