package worker

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/worker/handler"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/pubsub"
	mocksvc "storefront/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorker(t *testing.T, notifier service.OperatorNotifier) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	pushHandler := handler.NewPushHandler(handler.PushHandlerParams{
		Config:   cfg,
		Logger:   testLogger(),
		Notifier: notifier,
	})

	server := httptest.NewServer(NewEcho(cfg, testLogger(), pushHandler))
	t.Cleanup(server.Close)

	return server
}

func TestWorker_LocalPublisherDeliversAlert(t *testing.T) {
	notifier := mocksvc.NewMockOperatorNotifier(t)
	notifier.EXPECT().
		NotifyOperators(mock.Anything, "New order", "Tea x3 (total 7.50)", map[string]string{
			"order_id":   "-O1",
			"product_id": "-P1",
			"quantity":   "3",
		}).
		Return(nil).
		Once()

	server := newTestWorker(t, notifier)
	publisher := pubsub.NewLocalHTTPPublisher(server.URL+"/pubsub/push", testLogger())

	err := publisher.PublishOrderEvent(context.Background(), &service.OrderEvent{
		Type:        service.OrderEventPlaced,
		OrderID:     "-O1",
		ProductID:   "-P1",
		ProductName: "Tea",
		Quantity:    3,
		TotalPrice:  7.5,
		OccurredAt:  1,
	})
	require.NoError(t, err)

	// Lifecycle events other than placement are only logged
	err = publisher.PublishOrderEvent(context.Background(), &service.OrderEvent{
		Type:    service.OrderEventCompleted,
		OrderID: "-O1",
	})
	require.NoError(t, err)
}

func TestWorker_NotifierFailureRequestsRetry(t *testing.T) {
	notifier := mocksvc.NewMockOperatorNotifier(t)
	notifier.EXPECT().
		NotifyOperators(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("fcm unavailable"))

	server := newTestWorker(t, notifier)
	publisher := pubsub.NewLocalHTTPPublisher(server.URL+"/push", testLogger())

	err := publisher.PublishOrderEvent(context.Background(), &service.OrderEvent{
		Type:      service.OrderEventPlaced,
		OrderID:   "-O2",
		ProductID: "-P1",
		Quantity:  1,
	})
	assert.Error(t, err)
}
