// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProductHandler     *handler.ProductHandler
	OrderHandler       *handler.OrderHandler
	IdentityHandler    *handler.IdentityHandler
	HealthHandler      *handler.HealthHandler
	WatchHandler       *handler.WatchHandler
	ImageHandler       *handler.ImageHandler `optional:"true"`
	OperatorMiddleware *middleware.OperatorMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	productHandler     *handler.ProductHandler
	orderHandler       *handler.OrderHandler
	identityHandler    *handler.IdentityHandler
	healthHandler      *handler.HealthHandler
	watchHandler       *handler.WatchHandler
	imageHandler       *handler.ImageHandler
	operatorMiddleware *middleware.OperatorMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		productHandler:     params.ProductHandler,
		orderHandler:       params.OrderHandler,
		identityHandler:    params.IdentityHandler,
		healthHandler:      params.HealthHandler,
		watchHandler:       params.WatchHandler,
		imageHandler:       params.ImageHandler,
		operatorMiddleware: params.OperatorMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", r.healthHandler.HealthCheck)

	// Locally hosted product images
	if r.imageHandler != nil {
		e.GET("/images/*", r.imageHandler.GetImage)
	}

	operator := r.operatorMiddleware.RequireOperator

	apiV1 := e.Group("/api/v1")

	apiV1.GET("/identity", r.identityHandler.GetIdentity)
	// The order stream exposes the same data as the order list
	apiV1.GET("/watch/:collection", r.watchHandler.Watch, requireOperatorFor("orders", operator))

	productsGroup := apiV1.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.POST("", r.productHandler.CreateProduct, operator)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.GET("/:id/qr", r.productHandler.ShareQR)
		productsGroup.POST("/:id/ratings", r.productHandler.RateProduct)
	}

	ordersGroup := apiV1.Group("/orders")
	{
		ordersGroup.POST("", r.orderHandler.PlaceOrder)
		ordersGroup.GET("", r.orderHandler.ListOrders, operator)
		ordersGroup.POST("/:id/complete", r.orderHandler.CompleteOrder, operator)
		ordersGroup.DELETE("/:id", r.orderHandler.DeleteOrder, operator)
	}
}

// requireOperatorFor applies the operator check only when the :collection parameter names collection.
func requireOperatorFor(collection string, operator echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := operator(next)

		return func(c echo.Context) error {
			if c.Param("collection") == collection {
				return guarded(c)
			}

			return next(c)
		}
	}
}
