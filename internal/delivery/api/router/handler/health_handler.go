package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports the state of the sync engines
type HealthHandler struct {
	catalog usecase.CatalogSync
	orders  usecase.OrderSync
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(catalog usecase.CatalogSync, orders usecase.OrderSync) *HealthHandler {
	return &HealthHandler{catalog: catalog, orders: orders}
}

// EngineStatus describes one sync engine
type EngineStatus struct {
	Loading bool              `json:"loading"`
	Error   string            `json:"error,omitempty"`
	Stats   usecase.SyncStats `json:"stats"`
}

// HealthResponse is the health probe payload
type HealthResponse struct {
	Status   string       `json:"status"`
	Products EngineStatus `json:"products"`
	Orders   EngineStatus `json:"orders"`
}

func engineStatus(engine usecase.SyncEngine) EngineStatus {
	status := EngineStatus{Loading: engine.Loading(), Stats: engine.Stats()}
	if err := engine.Err(); err != nil {
		status.Error = err.Error()
	}

	return status
}

// HealthCheck returns 503 once a subscription has terminated; a loading view is still healthy
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	resp := HealthResponse{
		Status:   "ok",
		Products: engineStatus(h.catalog),
		Orders:   engineStatus(h.orders),
	}

	code := http.StatusOK
	if resp.Products.Error != "" || resp.Orders.Error != "" {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	return response.Success(c, code, resp)
}
