package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// ImageUploader hosts product images and returns their public URL.
type ImageUploader interface {
	// Upload stores the image and returns a URL the catalog can reference.
	Upload(ctx context.Context, image *entity.Image) (string, error)
}
