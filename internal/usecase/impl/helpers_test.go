package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/infra/realtime"

	"github.com/stretchr/testify/require"
)

var testNow = time.UnixMilli(1_717_000_000_000)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func fixedClock() time.Time {
	return testNow
}

func newStore() *realtime.MemoryStore {
	return realtime.NewMemoryStore(testLogger())
}

func seed(t *testing.T, store repository.RealtimeStore, path string, value any) {
	t.Helper()

	require.NoError(t, store.Set(context.Background(), path, value))
}

func productRecordValue(name string, price float64, ratedBy map[string]int) map[string]any {
	total := 0
	for _, stars := range ratedBy {
		total += stars
	}

	record := map[string]any{
		"name":        name,
		"description": name + " description",
		"price":       price,
		"imageUrl":    "https://img.example/" + name + ".png",
		"createdAt":   testNow.UnixMilli(),
		"ratingTotal": total,
		"ratingCount": len(ratedBy),
	}
	if len(ratedBy) > 0 {
		record["ratedBy"] = ratedBy
	}

	return record
}

func orderRecordValue(productID string, quantity int, status string) map[string]any {
	return map[string]any{
		"productId":    productID,
		"productName":  "Tea",
		"productImage": "https://img.example/tea.png",
		"unitPrice":    20000,
		"quantity":     quantity,
		"totalPrice":   20000 * quantity,
		"customerName": "Lan",
		"phone":        "0901234567",
		"address":      "12 Hang Bac",
		"status":       status,
		"createdAt":    testNow.UnixMilli(),
	}
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()

	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
