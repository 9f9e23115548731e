package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateProductQR generates a PNG QR code that links to a product page
	GenerateProductQR(productID string) ([]byte, error)

	// ParseProductQR parses QR code content and returns the product ID
	ParseProductQR(content string) (string, error)
}
