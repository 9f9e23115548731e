package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// IdentityProvider yields the stable anonymous identity of this device.
type IdentityProvider interface {
	// GetOrCreateIdentity returns the persisted identity, creating it on first call.
	GetOrCreateIdentity(ctx context.Context) (entity.Identity, error)
}
