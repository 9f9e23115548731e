package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	partitionPending  = "pending"
	partitionResolved = "resolved"
	partitionAll      = "all"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	Catalog usecase.CatalogSync
	Orders  usecase.OrderSync
	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	catalog usecase.CatalogSync
	orders  usecase.OrderSync
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		catalog: params.Catalog,
		orders:  params.Orders,
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// ListOrdersQuery selects the order partition
type ListOrdersQuery struct {
	Partition string `query:"partition" validate:"omitempty,oneof=pending resolved all"`
}

// OrderListResponse is the order view
type OrderListResponse struct {
	Loading bool           `json:"loading"`
	Orders  []entity.Order `json:"orders"`
}

// PlaceOrder records a pending order for a catalog product
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	product, err := lookupProduct(h.catalog, req.ProductID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	// Quantity and customer fields are validated by the usecase with business codes
	order, err := h.orderUC.PlaceOrder(c.Request().Context(), product, entity.CustomerInfo{
		Name:    req.CustomerName,
		Phone:   req.Phone,
		Address: req.Address,
	}, req.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order)
}

// ListOrders returns orders newest first, optionally restricted to one partition
func (h *OrderHandler) ListOrders(c echo.Context) error {
	var query ListOrdersQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order query")
	}

	if err := c.Validate(&query); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	var orders []entity.Order
	switch query.Partition {
	case partitionPending:
		orders = h.orders.Pending()
	case partitionResolved:
		orders = h.orders.Resolved()
	case "", partitionAll:
		orders = h.orders.Orders()
	}
	if orders == nil {
		orders = []entity.Order{}
	}

	return response.Success(c, http.StatusOK, OrderListResponse{
		Loading: h.orders.Loading(),
		Orders:  orders,
	})
}

// CompleteOrder marks an order completed
func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	orderID := c.Param("id")
	if err := h.orderUC.Complete(c.Request().Context(), orderID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"id":     orderID,
		"status": entity.OrderStatusCompleted.String(),
	})
}

// DeleteOrder removes an order
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	orderID := c.Param("id")
	if err := h.orderUC.Delete(c.Request().Context(), orderID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
