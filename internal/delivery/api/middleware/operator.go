package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// OperatorMiddleware gates operator actions behind a bearer token when operator tokens are
// configured. Without a secret every caller may act as operator.
type OperatorMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewOperatorMiddleware is the constructor for OperatorMiddleware.
func NewOperatorMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *OperatorMiddleware {
	if !tokenSvc.Enabled() {
		logger.Warn("Operator authorization disabled; product and order management is open to every client")
	}

	return &OperatorMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// RequireOperator validates the Authorization header and stores the operator subject.
func (m *OperatorMiddleware) RequireOperator(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.tokenSvc.Enabled() {
			return next(c)
		}

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.AppError(c, domainerrors.ErrUnauthorized)
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return response.AppError(c, domainerrors.ErrUnauthorized.WithDetails("bearer token required"))
		}

		claims, err := m.tokenSvc.ValidateOperatorToken(tokenString)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Warn("Operator token rejected",
				slog.Any("error", err),
			)

			return response.AppError(c, domainerrors.ErrForbidden)
		}

		deliverycontext.SetOperator(c, claims.Subject)

		return next(c)
	}
}
