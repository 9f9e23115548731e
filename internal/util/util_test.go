package util

import (
	"math"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	t.Parallel()

	const helloSum = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	assert.Equal(t, helloSum, Checksum([]byte("hello")))
}

func TestNewValidator_NotBlank(t *testing.T) {
	t.Parallel()

	v := NewValidator()

	assert.NoError(t, v.Struct(entity.CustomerInfo{Name: "An", Phone: "0901", Address: "1 Main St"}))
	assert.Error(t, v.Struct(entity.CustomerInfo{Name: "   ", Phone: "0901", Address: "1 Main St"}))
	assert.Error(t, v.Struct(entity.CustomerInfo{Name: "An", Phone: "", Address: "1 Main St"}))
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", FormatTimestamp(time.Time{}))
	assert.NotEqual(t, "-", FormatTimestamp(time.UnixMilli(1_700_000_000_000)))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero bytes", bytes: 0, expected: "0 B"},
		{name: "bytes under kilobyte", bytes: 512, expected: "512 B"},
		{name: "exact kilobyte", bytes: 1024, expected: "1.0 KB"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5 KB"},
		{name: "megabyte", bytes: 1024 * 1024, expected: "1.0 MB"},
		{name: "gigabyte", bytes: 5 * 1024 * 1024 * 1024, expected: "5.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Fatalf("FormatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{name: "under one minute", duration: 45 * time.Second, expected: "45s"},
		{name: "rounded second to minute", duration: 59*time.Second + 500*time.Millisecond, expected: "1m0s"},
		{name: "minutes and seconds", duration: 2*time.Minute + 30*time.Second, expected: "2m30s"},
		{name: "hours and minutes", duration: time.Hour + 30*time.Minute, expected: "1h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatDuration(tt.duration); got != tt.expected {
				t.Fatalf("FormatDuration(%s) = %s, want %s", tt.duration, got, tt.expected)
			}
		})
	}
}

func TestNewValidator_Finite(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	product := func(price float64) entity.NewProduct {
		return entity.NewProduct{Name: "Tea", Price: price, Image: &entity.Image{Data: []byte("x")}}
	}

	assert.NoError(t, v.Struct(product(0)))
	assert.NoError(t, v.Struct(product(20000)))
	assert.Error(t, v.Struct(product(math.Inf(1))))
	assert.Error(t, v.Struct(product(math.NaN())))
}
