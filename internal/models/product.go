package models

import "gorm.io/gorm"

// Product lifecycle states.
const (
	ProductDraft    = "draft"
	ProductActive   = "active"
	ProductArchived = "archived"
)

// Product represents a listing in the marketplace. Prices are integer
// cents. RatingCount and RatingSum are maintained by the review service
// so the average never has to be recomputed from all reviews.
type Product struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SellerID    string `json:"seller_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Slug        string `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required,slug"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	Category    string `json:"category" gorm:"index;type:varchar(50)" validate:"omitempty,max=50"`
	Status      string `json:"status" gorm:"type:varchar(16);default:draft" validate:"omitempty,oneof=draft active archived"`
	RatingCount int    `json:"rating_count" validate:"gte=0"`
	RatingSum   int    `json:"-" validate:"gte=0"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// AverageRating returns the mean review rating, or 0 when unreviewed.
func (p *Product) AverageRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}
	return float64(p.RatingSum) / float64(p.RatingCount)
}
