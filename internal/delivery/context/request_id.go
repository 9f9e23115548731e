package context

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyClientID is the key for storing the caller's anonymous identity in echo.Context.
	KeyClientID ContextKey = "client_id"

	// KeyOperator is the key for storing the validated operator subject in echo.Context.
	KeyOperator ContextKey = "operator"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"

	// HeaderXClientID carries the anonymous device identity used for ratings.
	HeaderXClientID = "X-Client-Id"

	maxRequestIDLength = 128
)

// NormalizeRequestID returns id when it is a usable request ID, otherwise a new UUID.
func NormalizeRequestID(id string) string {
	if id == "" || len(id) > maxRequestIDLength || strings.ContainsFunc(id, func(r rune) bool {
		return r < 0x21 || r > 0x7e
	}) {
		return uuid.New().String()
	}

	return id
}

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetClientID stores the caller's identity in echo.Context.
func SetClientID(c echo.Context, clientID string) {
	c.Set(string(KeyClientID), clientID)
}

// GetClientID returns the caller's identity, or "" when the request carried none.
func GetClientID(c echo.Context) string {
	if id, ok := c.Get(string(KeyClientID)).(string); ok {
		return id
	}

	return ""
}

// SetOperator stores the validated operator subject in echo.Context.
func SetOperator(c echo.Context, subject string) {
	c.Set(string(KeyOperator), subject)
}

// GetOperator returns the operator subject set by the operator middleware.
func GetOperator(c echo.Context) (string, bool) {
	subject, ok := c.Get(string(KeyOperator)).(string)

	return subject, ok
}
