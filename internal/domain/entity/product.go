// Package entity contains the core business objects of the project.
package entity

import (
	"maps"
	"math"
	"time"
)

const (
	// MinStars is the lowest accepted star value.
	MinStars = 1
	// MaxStars is the highest accepted star value.
	MaxStars = 5
)

// Product is a catalog item as materialized from the product collection.
type Product struct {
	ID          string         `json:"id"`           // Push key assigned by the store.
	Name        string         `json:"name"`         // Display name.
	Description string         `json:"description"`  // Free text description.
	Price       float64        `json:"price"`        // Unit price in whole currency units.
	ImageURL    string         `json:"image_url"`    // Resolved reference to the hosted image.
	CreatedAt   time.Time      `json:"created_at"`   // Writer-local creation time.
	RatingTotal int            `json:"rating_total"` // Sum of all accepted stars.
	RatingCount int            `json:"rating_count"` // Number of accepted ratings.
	RatedBy     map[string]int `json:"rated_by"`     // Identity -> stars, one entry per identity.
}

// RatingAggregate is the rating state of a product after an accepted rating.
type RatingAggregate struct {
	Total   int            `json:"total"`
	Count   int            `json:"count"`
	RatedBy map[string]int `json:"rated_by"`
}

// Aggregate returns a copy of the product's rating fields.
func (p *Product) Aggregate() RatingAggregate {
	return RatingAggregate{
		Total:   p.RatingTotal,
		Count:   p.RatingCount,
		RatedBy: maps.Clone(p.RatedBy),
	}
}

// HasRated reports whether identity already contributed a rating.
func (p *Product) HasRated(identity Identity) bool {
	_, ok := p.RatedBy[identity.String()]

	return ok
}

// UserRating returns the stars identity gave, or 0 when it has not rated.
func (p *Product) UserRating(identity Identity) int {
	return p.RatedBy[identity.String()]
}

// AverageRating returns ratingTotal/ratingCount. ok is false when nobody rated yet.
func (p *Product) AverageRating() (avg float64, ok bool) {
	if p.RatingCount <= 0 {
		return 0, false
	}

	return float64(p.RatingTotal) / float64(p.RatingCount), true
}

// Summary returns the display form of the product's rating.
func (p *Product) Summary() RatingSummary {
	avg, ok := p.AverageRating()
	if !ok {
		return RatingSummary{Average: DefaultAverageRating, Count: 0, Rated: false}
	}

	return RatingSummary{Average: math.Round(avg*10) / 10, Count: p.RatingCount, Rated: true}
}

// WithAggregate returns a copy of the product carrying the given rating state.
func (p Product) WithAggregate(agg RatingAggregate) Product {
	p.RatingTotal = agg.Total
	p.RatingCount = agg.Count
	p.RatedBy = maps.Clone(agg.RatedBy)

	return p
}

// Clone returns a deep copy of the product.
func (p Product) Clone() Product {
	p.RatedBy = maps.Clone(p.RatedBy)
	if p.RatedBy == nil {
		p.RatedBy = map[string]int{}
	}

	return p
}

// ConsistentRatings reports whether the aggregate matches the ratedBy entries.
func (p *Product) ConsistentRatings() bool {
	sum := 0
	for _, stars := range p.RatedBy {
		sum += stars
	}

	return sum == p.RatingTotal && len(p.RatedBy) == p.RatingCount
}

// ValidStars reports whether stars is inside the accepted range.
func ValidStars(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}
