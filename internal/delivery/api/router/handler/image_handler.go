package handler

import (
	"context"
	"io"
	"net/http"

	"storefront/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ImageSource reads hosted product images.
type ImageSource interface {
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// ImageHandler serves uploaded images for buckets without their own public endpoint
type ImageHandler struct {
	source   ImageSource
	notFound error
}

// NewImageHandler creates a new ImageHandler; errors matching notFound become 404s
func NewImageHandler(source ImageSource, notFound error) *ImageHandler {
	return &ImageHandler{source: source, notFound: notFound}
}

// GetImage streams the image stored under the wildcard key
func (h *ImageHandler) GetImage(c echo.Context) error {
	reader, contentType, err := h.source.Open(c.Request().Context(), c.Param("*"))
	if err != nil {
		if errors.Is(err, h.notFound) {
			return response.Error(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "image not found", nil)
		}

		return errors.WithStack(err)
	}
	defer reader.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	return c.Stream(http.StatusOK, contentType, reader)
}
