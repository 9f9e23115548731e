package impl

import (
	"encoding/json"
	"time"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// productRecord is the stored form of a product. Older records carry timestamp instead of
// createdAt and may predate the rating fields.
type productRecord struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	ImageURL    string         `json:"imageUrl"`
	CreatedAt   int64          `json:"createdAt,omitempty"`
	Timestamp   int64          `json:"timestamp,omitempty"`
	RatingTotal int            `json:"ratingTotal"`
	RatingCount int            `json:"ratingCount"`
	RatedBy     map[string]int `json:"ratedBy,omitempty"`
}

// orderRecord is the stored form of an order.
type orderRecord struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	UnitPrice    float64 `json:"unitPrice"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"totalPrice"`
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	Status       string  `json:"status"`
	CreatedAt    int64   `json:"createdAt,omitempty"`
	Timestamp    int64   `json:"timestamp,omitempty"`
}

func decodeProduct(id string, raw json.RawMessage) (entity.Product, error) {
	var record productRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return entity.Product{}, errors.Wrapf(err, "decode product %s", id)
	}

	return record.toDomain(id), nil
}

// toDomain backfills missing rating fields with an empty rating. The backfill stays local.
func (r *productRecord) toDomain(id string) entity.Product {
	ratedBy := r.RatedBy
	if ratedBy == nil {
		ratedBy = map[string]int{}
	}

	return entity.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		CreatedAt:   recordTime(r.CreatedAt, r.Timestamp),
		RatingTotal: r.RatingTotal,
		RatingCount: r.RatingCount,
		RatedBy:     ratedBy,
	}
}

func productFromDomain(p *entity.Product) productRecord {
	return productRecord{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt.UnixMilli(),
		RatingTotal: p.RatingTotal,
		RatingCount: p.RatingCount,
		RatedBy:     p.RatedBy,
	}
}

func decodeOrder(id string, raw json.RawMessage) (entity.Order, error) {
	var record orderRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return entity.Order{}, errors.Wrapf(err, "decode order %s", id)
	}

	return record.toDomain(id), nil
}

func (r *orderRecord) toDomain(id string) entity.Order {
	return entity.Order{
		ID:           id,
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		ProductImage: r.ProductImage,
		UnitPrice:    r.UnitPrice,
		Quantity:     r.Quantity,
		TotalPrice:   r.TotalPrice,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Address:      r.Address,
		Status:       entity.OrderStatus(r.Status),
		CreatedAt:    recordTime(r.CreatedAt, r.Timestamp),
	}
}

func orderFromDomain(o *entity.Order) orderRecord {
	return orderRecord{
		ProductID:    o.ProductID,
		ProductName:  o.ProductName,
		ProductImage: o.ProductImage,
		UnitPrice:    o.UnitPrice,
		Quantity:     o.Quantity,
		TotalPrice:   o.TotalPrice,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		Status:       o.Status.String(),
		CreatedAt:    o.CreatedAt.UnixMilli(),
	}
}

func recordTime(createdAt, timestamp int64) time.Time {
	switch {
	case createdAt > 0:
		return time.UnixMilli(createdAt)
	case timestamp > 0:
		return time.UnixMilli(timestamp)
	default:
		return time.Time{}
	}
}
