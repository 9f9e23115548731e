package repository

import "strings"

// Collection paths owned by the storefront.
const (
	ProductsPath = "products"
	OrdersPath   = "orders"
)

// Field names inside product and order records.
const (
	FieldRatingTotal = "ratingTotal"
	FieldRatingCount = "ratingCount"
	FieldRatedBy     = "ratedBy"
	FieldStatus      = "status"
)

// JoinPath joins path segments with the store separator, dropping empty segments.
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.Trim(segment, "/")
		if segment != "" {
			parts = append(parts, segment)
		}
	}

	return strings.Join(parts, "/")
}

// SplitPath splits a store path into its segments.
func SplitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

// ValidKey reports whether key can be used as a single path segment.
// Firebase forbids '.', '#', '$', '[', ']' and '/' in keys.
func ValidKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, ".#$[]/")
}

// ProductPath returns the path of a product record.
func ProductPath(id string) string {
	return JoinPath(ProductsPath, id)
}

// OrderPath returns the path of an order record.
func OrderPath(id string) string {
	return JoinPath(OrdersPath, id)
}

// RatingPaths returns the three paths an accepted rating touches.
func RatingPaths(productID, identity string) (total, count, ratedBy string) {
	base := ProductPath(productID)

	return JoinPath(base, FieldRatingTotal), JoinPath(base, FieldRatingCount), JoinPath(base, FieldRatedBy, identity)
}
