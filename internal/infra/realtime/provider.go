// Package realtime provides RealtimeStore implementations: Firebase Realtime Database for
// deployments and an in-memory tree for local runs and tests.
package realtime

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// StoreParams holds dependencies for the RealtimeStore, injected by Fx
type StoreParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewRealtimeStore creates a RealtimeStore based on configuration
func NewRealtimeStore(params StoreParams) (repository.RealtimeStore, error) {
	cfg := params.Config.Realtime
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.RealtimeProviderMemory {
		logger.Warn("Realtime store not configured for persistence, using in-memory store")

		return NewMemoryStore(logger), nil
	}

	switch cfg.Provider {
	case constants.RealtimeProviderFirebase:
		return NewFirebaseStore(params.Ctx, FirebaseOptions{
			DatabaseURL:     cfg.DatabaseURL,
			CredentialsPath: cfg.CredentialsPath,
			PollInterval:    cfg.PollInterval,
			MaxPollFailures: cfg.MaxPollFailures,
		}, logger)
	default:
		return nil, errors.Errorf("unknown realtime provider: %s", cfg.Provider)
	}
}

// Module provides the realtime store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRealtimeStore),
)
