package service

import (
	"context"
)

// OperatorNotifier alerts the operators' devices about new orders
type OperatorNotifier interface {
	// NotifyOperators sends a push message to every device subscribed to the operator topic
	NotifyOperators(ctx context.Context, title, body string, data map[string]string) error
}
