package models

import "time"

// Review represents a buyer's review of a product. Each author may
// review a product once; the repository enforces this with a composite
// unique index.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_review_author;type:varchar(36)" validate:"required,uuid"`
	AuthorID  string    `json:"author_id" gorm:"uniqueIndex:idx_review_author;type:varchar(36)" validate:"required,uuid"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Title     string    `json:"title" validate:"omitempty,max=100"`
	Body      string    `json:"body" validate:"omitempty,max=2000"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
