package repositories

import (
	"time"

	"marketplace/internal/models"
)

// ProductRepository defines the interface for product data access.
// Listing methods use keyset cursors (creation instant + id) so pages
// stay stable while new products are published.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	ListActive(category string, before time.Time, beforeID string, limit int) ([]models.Product, error)
	ListBySeller(sellerID string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// AddRating adjusts the denormalized rating aggregate by the given
	// deltas (positive on review creation, negative on moderation).
	AddRating(id string, sumDelta, countDelta int) error
}
