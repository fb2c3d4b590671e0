package repositories

import (
	"time"

	"marketplace/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByID(id string) (*models.Review, error)
	GetByProductAndAuthor(productID, authorID string) (*models.Review, error)
	ListByProduct(productID string, before time.Time, beforeID string, limit int) ([]models.Review, error)
	Create(review *models.Review) error
	Delete(id string) error
}
