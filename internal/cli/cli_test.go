package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/realtime"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testSecret = "operator_secret_for_cli_tests_0123456789"

// fixture is a config directory plus a memory store every command of a test shares.
type fixture struct {
	dir   string
	store *realtime.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	cfg := `env:
  env: test
  serviceName: storectl
identity:
  path: ` + filepath.Join(dir, "identity") + `
operator:
  secret: ` + testSecret + `
  tokenTtl: 1h
qrcode:
  size: 128
  errorCorrectionLevel: M
  baseUrl: https://shop.example
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o600))

	return &fixture{
		dir:   dir,
		store: realtime.NewMemoryStore(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func (f *fixture) rootOptions(format string) *RootOptions {
	return &RootOptions{
		ConfigDir: f.dir,
		Format:    format,
		Timeout:   5 * time.Second,
		openStore: func(context.Context, *config.Config, *slog.Logger) (repository.RealtimeStore, error) {
			return f.store, nil
		},
	}
}

func (f *fixture) seed(t *testing.T, path string, value any) {
	t.Helper()

	require.NoError(t, f.store.Set(context.Background(), path, value))
}

// run executes cmd with args and returns its stdout.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func decodeData(t *testing.T, out string, v any) {
	t.Helper()

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}
