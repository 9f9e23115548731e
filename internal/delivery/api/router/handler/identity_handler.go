package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// IdentityHandler exposes the device identity of this server
type IdentityHandler struct {
	provider service.IdentityProvider
}

// NewIdentityHandler creates a new IdentityHandler instance
func NewIdentityHandler(provider service.IdentityProvider) *IdentityHandler {
	return &IdentityHandler{provider: provider}
}

// GetIdentity returns the persisted identity, creating it on first use
func (h *IdentityHandler) GetIdentity(c echo.Context) error {
	identity, err := h.provider.GetOrCreateIdentity(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]string{"identity": identity.String()})
}
