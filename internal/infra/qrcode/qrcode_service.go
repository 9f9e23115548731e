package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

// productPathPrefix is the storefront route a product QR code points at.
const productPathPrefix = "/products/"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance.
// Product codes encode baseURL + "/products/{id}".
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateProductQR generates a PNG QR code linking to the product page
func (s *qrcodeService) GenerateProductQR(productID string) ([]byte, error) {
	if !repository.ValidKey(productID) {
		return nil, fmt.Errorf("invalid product ID: %q", productID)
	}

	content := s.baseURL + productPathPrefix + url.PathEscape(productID)

	qrCode, err := qrcode.New(content, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseProductQR parses scanned QR content and returns the product ID
func (s *qrcodeService) ParseProductQR(content string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse QR code content: %w", err)
	}

	idx := strings.LastIndex(parsed.Path, productPathPrefix)
	if idx < 0 {
		return "", fmt.Errorf("not a product link: %s", content)
	}

	productID := parsed.Path[idx+len(productPathPrefix):]
	if !repository.ValidKey(productID) {
		return "", fmt.Errorf("invalid product ID in QR code: %q", productID)
	}

	return productID, nil
}
