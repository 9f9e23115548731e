package cli

import (
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrders(t *testing.T, f *fixture) {
	t.Helper()

	f.seed(t, "orders/o1", map[string]any{
		"productId": "p1", "productName": "Tea", "unitPrice": 2.5, "quantity": 2, "totalPrice": 5.0,
		"customerName": "Ann", "phone": "555", "address": "Main St", "status": "pending", "createdAt": 1_717_000_000_000,
	})
	f.seed(t, "orders/o2", map[string]any{
		"productId": "p2", "productName": "Cake", "unitPrice": 4.0, "quantity": 1, "totalPrice": 4.0,
		"customerName": "Bob", "phone": "556", "address": "Side St", "status": "completed", "createdAt": 1_717_000_100_000,
	})
}

func TestOrdersList(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantIDs   []string
		wantEmpty bool
	}{
		{name: "pending by default", args: []string{"list"}, wantIDs: []string{"o1"}},
		{name: "resolved", args: []string{"list", "--partition", "resolved"}, wantIDs: []string{"o2"}},
		{name: "all newest first", args: []string{"list", "-p", "all"}, wantIDs: []string{"o2", "o1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seedOrders(t, f)

			out, err := run(t, NewOrdersCommand(f.rootOptions("json")), tt.args...)
			require.NoError(t, err)

			var orders []entity.Order
			decodeData(t, out, &orders)

			ids := make([]string, 0, len(orders))
			for _, order := range orders {
				ids = append(ids, order.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestOrdersListText(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f)

	out, err := run(t, NewOrdersCommand(f.rootOptions("text")), "list")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "o1")
	assert.Contains(t, out, "Tea")
	assert.Contains(t, out, "5.00")
	assert.NotContains(t, out, "o2")
}

func TestOrdersListEmpty(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, NewOrdersCommand(f.rootOptions("text")), "list")
	require.NoError(t, err)
	assert.Equal(t, "No pending orders\n", out)
}

func TestOrdersListInvalidPartition(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, NewOrdersCommand(f.rootOptions("text")), "list", "--partition", "cancelled")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid partition")
}

func TestOrdersComplete(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f)

	out, err := run(t, NewOrdersCommand(f.rootOptions("text")), "complete", "o1")
	require.NoError(t, err)
	assert.Equal(t, "Order o1 completed\n", out)

	var record map[string]any
	found, err := f.store.Get("orders/o1", &record)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "completed", record["status"])
	assert.Equal(t, "Tea", record["productName"])
}

func TestOrdersDelete(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f)

	out, err := run(t, NewOrdersCommand(f.rootOptions("json")), "delete", "o2")
	require.NoError(t, err)

	var result map[string]string
	decodeData(t, out, &result)
	assert.Equal(t, map[string]string{"id": "o2", "result": "deleted"}, result)

	var record map[string]any
	found, err := f.store.Get("orders/o2", &record)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOrdersCompleteInvalidID(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, NewOrdersCommand(f.rootOptions("text")), "complete", "bad.id")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestOrdersStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f)
	f.store.FailWrites(repository.ErrStoreUnavailable)

	_, err := run(t, NewOrdersCommand(f.rootOptions("text")), "delete", "o1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
