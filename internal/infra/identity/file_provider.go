// Package identity persists the anonymous device identity used to deduplicate ratings.
package identity

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

// DefaultPath is used when identity.path is not configured.
const DefaultPath = ".storefront/identity"

// fileProvider keeps a random UUID in a file so the device rates under the same identity
// across restarts.
type fileProvider struct {
	path   string
	logger *slog.Logger

	mu       sync.Mutex
	identity entity.Identity
}

// NewFileProvider creates an IdentityProvider backed by the configured identity file.
func NewFileProvider(cfg *config.Config, logger *slog.Logger) service.IdentityProvider {
	path := DefaultPath
	if cfg.Identity != nil && strings.TrimSpace(cfg.Identity.Path) != "" {
		path = cfg.Identity.Path
	}

	return newFileProvider(path, logger)
}

func newFileProvider(path string, logger *slog.Logger) *fileProvider {
	return &fileProvider{path: path, logger: logger}
}

// GetOrCreateIdentity implements service.IdentityProvider.
func (p *fileProvider) GetOrCreateIdentity(ctx context.Context) (entity.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.identity.IsZero() {
		return p.identity, nil
	}

	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	identity, err := p.read()
	switch {
	case err == nil:
		p.identity = identity

		return identity, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", err
	}

	identity = entity.Identity(uuid.NewString())
	if err := p.write(identity); err != nil {
		return "", err
	}

	p.logger.Info("Created device identity", slog.String("path", p.path))
	p.identity = identity

	return identity, nil
}

func (p *fileProvider) read() (entity.Identity, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return "", errors.Wrapf(err, "read identity file %s", p.path)
	}

	identity := entity.Identity(strings.TrimSpace(string(raw)))
	if identity.IsZero() || !repository.ValidKey(identity.String()) {
		return "", errors.Errorf("identity file %s holds an invalid identity", p.path)
	}

	return identity, nil
}

func (p *fileProvider) write(identity entity.Identity) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return errors.Wrapf(err, "create identity directory for %s", p.path)
	}

	if err := os.WriteFile(p.path, []byte(identity.String()+"\n"), 0o600); err != nil {
		return errors.Wrapf(err, "write identity file %s", p.path)
	}

	return nil
}
