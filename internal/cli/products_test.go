package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, f *fixture) {
	t.Helper()

	f.seed(t, "products/p1", map[string]any{
		"name": "Tea", "description": "Green", "price": 2.5, "imageUrl": "http://img/tea.png",
		"createdAt": 1_717_000_000_000, "ratingTotal": 9, "ratingCount": 2,
		"ratedBy": map[string]int{"someone": 4, "other": 5},
	})
	// Legacy record without rating fields
	f.seed(t, "products/p2", map[string]any{
		"name": "Cake", "price": 4, "imageUrl": "http://img/cake.png", "timestamp": 1_717_000_100_000,
	})
}

func TestProductsList(t *testing.T) {
	f := newFixture(t)
	seedProducts(t, f)

	out, err := run(t, NewProductsCommand(f.rootOptions("json")), "list")
	require.NoError(t, err)

	var products []ProductSummary
	decodeData(t, out, &products)
	require.Len(t, products, 2)

	assert.Equal(t, "p2", products[0].ID)
	assert.False(t, products[0].Rating.Rated)
	assert.Equal(t, 0.0, products[0].Rating.Average)

	assert.Equal(t, "p1", products[1].ID)
	assert.Equal(t, 4.5, products[1].Rating.Average)
	assert.Equal(t, 2, products[1].Rating.Count)
}

func TestProductsListText(t *testing.T) {
	f := newFixture(t)
	seedProducts(t, f)

	out, err := run(t, NewProductsCommand(f.rootOptions("text")), "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Cake")
	assert.Contains(t, lines[2], "4.5 (2)")
}

func TestProductsRate(t *testing.T) {
	f := newFixture(t)
	seedProducts(t, f)

	out, err := run(t, NewProductsCommand(f.rootOptions("json")), "rate", "p1", "3")
	require.NoError(t, err)

	var first RateResult
	decodeData(t, out, &first)
	assert.True(t, first.Accepted)
	assert.Equal(t, 3, first.Stars)
	assert.Equal(t, 4.0, first.Rating.Average)
	assert.Equal(t, 3, first.Rating.Count)
	require.NotEmpty(t, first.Identity)

	identity, err := os.ReadFile(filepath.Join(f.dir, "identity"))
	require.NoError(t, err)
	assert.Equal(t, first.Identity, strings.TrimSpace(string(identity)))

	var record map[string]any
	found, err := f.store.Get("products/p1", &record)
	require.NoError(t, err)
	require.True(t, found)
	assert.EqualValues(t, 12, record["ratingTotal"])
	assert.EqualValues(t, 3, record["ratingCount"])

	// The same identity cannot rate twice
	out, err = run(t, NewProductsCommand(f.rootOptions("json")), "rate", "p1", "5")
	require.NoError(t, err)

	var second RateResult
	decodeData(t, out, &second)
	assert.False(t, second.Accepted)
	assert.Equal(t, 3, second.Stars)
	assert.Equal(t, 3, second.Rating.Count)
}

func TestProductsRateErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{name: "stars out of range", args: []string{"rate", "p1", "6"}, wantCode: ExitFailure, wantErr: "invalid stars"},
		{name: "stars not a number", args: []string{"rate", "p1", "many"}, wantCode: ExitFailure, wantErr: "invalid stars"},
		{name: "unknown product", args: []string{"rate", "missing", "4"}, wantCode: ExitFailure, wantErr: "product not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seedProducts(t, f)

			_, err := run(t, NewProductsCommand(f.rootOptions("text")), tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProductsQR(t *testing.T) {
	f := newFixture(t)
	seedProducts(t, f)
	path := filepath.Join(t.TempDir(), "p1.png")

	out, err := run(t, NewProductsCommand(f.rootOptions("text")), "qr", "p1", "--output", path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	png, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestProductsQRRequiresOutput(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, NewProductsCommand(f.rootOptions("text")), "qr", "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
