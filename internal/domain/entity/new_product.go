package entity

// Image is an uploaded image payload.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewProduct is the operator input for adding a catalog item.
type NewProduct struct {
	Name        string  `validate:"required,notblank"`
	Price       float64 `validate:"finite,gte=0"`
	Description string
	Image       *Image `validate:"required"`
}
