package entity

// DefaultAverageRating is shown for products nobody has rated yet.
const DefaultAverageRating = 0.0

// RatingSummary is the display form of a product rating.
type RatingSummary struct {
	Average float64 `json:"average"` // Rounded to one decimal.
	Count   int     `json:"count"`
	Rated   bool    `json:"rated"` // False when Average is the default value.
}

// RatingResult is returned by the rating aggregator.
type RatingResult struct {
	Aggregate RatingAggregate `json:"aggregate"`
	// Accepted is false when the identity had already rated; the call was a no-op.
	Accepted bool `json:"accepted"`
}
