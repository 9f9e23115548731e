package cli

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/repository"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/realtime"
	"storefront/internal/usecase"

	"github.com/spf13/cobra"
)

// readyPollInterval is how often a command checks whether a sync engine has its first snapshot.
const readyPollInterval = 20 * time.Millisecond

// storeOpener builds the realtime store a command talks to.
type storeOpener func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.RealtimeStore, error)

func openRealtimeStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.RealtimeStore, error) {
	return realtime.NewRealtimeStore(realtime.StoreParams{Ctx: ctx, Config: cfg, Logger: logger})
}

// session is what a command runs against: loaded config, a stderr logger and the store.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	store  repository.RealtimeStore
	out    *OutputFormatter
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	if o.ConfigDir != "" {
		return config.Load(o.ConfigDir)
	}

	return config.New()
}

// newSession loads config and connects to the store. Logs go to stderr so stdout only
// carries command output.
func (o *RootOptions) newSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	logger, err := o.newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	opener := o.openStore
	if opener == nil {
		opener = openRealtimeStore
	}

	store, err := opener(ctx, cfg, logger)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open realtime store", err)
	}

	return &session{
		cfg:    cfg,
		logger: logger,
		store:  store,
		out:    &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()},
	}, nil
}

// newLogger writes text logs to stderr, warnings only unless --verbose.
func (o *RootOptions) newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	if !o.Verbose {
		cfg.Env.Log.Level = "warn"
	}
	cfg.Env.Log.Pretty = true

	logger, err := logs.NewWriter(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create logger", err)
	}

	return logger, nil
}

// commandContext bounds a command by the --timeout flag.
func (o *RootOptions) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithTimeout(ctx, o.Timeout)
}

// startEngine starts engine and blocks until its first snapshot is applied.
// The returned stop function must be called once the command is done with the view.
func startEngine(ctx context.Context, engine usecase.SyncEngine) (func(), error) {
	if err := engine.Start(ctx); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to subscribe", err)
	}

	if err := waitReady(ctx, engine); err != nil {
		engine.Stop()

		return nil, err
	}

	return engine.Stop, nil
}

func waitReady(ctx context.Context, engine usecase.SyncEngine) error {
	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for engine.Loading() {
		select {
		case <-ctx.Done():
			return WrapExitError(ExitCommandError, "timed out waiting for the store", ctx.Err())
		case <-engine.Done():
			if err := engine.Err(); err != nil {
				return WrapExitError(ExitCommandError, "subscription failed", err)
			}

			return NewExitError(ExitCommandError, "subscription closed before the first snapshot")
		case <-ticker.C:
		}
	}

	return nil
}
