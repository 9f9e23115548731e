package identity

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileProvider_CreatesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "identity")
	provider := newFileProvider(path, testLogger())

	first, err := provider.GetOrCreateIdentity(context.Background())
	require.NoError(t, err)
	_, err = uuid.Parse(first.String())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first.String()+"\n", string(raw))

	second, err := provider.GetOrCreateIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	reloaded, err := newFileProvider(path, testLogger()).GetOrCreateIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, reloaded)
}

func TestFileProvider_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity")
	require.NoError(t, os.WriteFile(path, []byte("  device-1234 \n"), 0o600))

	identity, err := newFileProvider(path, testLogger()).GetOrCreateIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "device-1234", identity.String())
}

func TestFileProvider_RejectsInvalidIdentity(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: "\n"},
		{name: "forbidden characters", content: "bad/identity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "identity")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := newFileProvider(path, testLogger()).GetOrCreateIdentity(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestFileProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "identity")
	_, err := newFileProvider(path, testLogger()).GetOrCreateIdentity(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestNewFileProvider_DefaultPath(t *testing.T) {
	provider := NewFileProvider(&config.Config{}, testLogger()).(*fileProvider)
	assert.Equal(t, DefaultPath, provider.path)

	provider = NewFileProvider(&config.Config{Identity: &config.IdentityConfig{Path: "/tmp/x/identity"}}, testLogger()).(*fileProvider)
	assert.Equal(t, "/tmp/x/identity", provider.path)
}
