package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const keepAliveInterval = 15 * time.Second

// WatchHandler streams view changes as server-sent events
type WatchHandler struct {
	engines map[string]usecase.SyncEngine
}

// NewWatchHandler creates a WatchHandler for the product and order views
func NewWatchHandler(catalog usecase.CatalogSync, orders usecase.OrderSync) *WatchHandler {
	return &WatchHandler{engines: map[string]usecase.SyncEngine{
		"products": catalog,
		"orders":   orders,
	}}
}

// Watch streams one "change" event per applied snapshot of the named collection until the
// client disconnects or the engine stops.
func (h *WatchHandler) Watch(c echo.Context) error {
	engine, ok := h.engines[c.Param("collection")]
	if !ok {
		return response.Error(c, http.StatusNotFound, "UNKNOWN_COLLECTION", "unknown collection", c.Param("collection"))
	}

	changes, unwatch := engine.Watch()
	defer unwatch()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-engine.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case change := <-changes:
			payload, err := json.Marshal(change)
			if err != nil {
				return errors.WithStack(err)
			}
			if _, err := fmt.Fprintf(res, "id: %d\nevent: change\ndata: %s\n\n", change.Version, payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
