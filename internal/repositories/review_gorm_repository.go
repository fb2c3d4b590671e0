package repositories

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// GetByID retrieves a review by its ID.
func (r *GORMReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review by ID %s: %w", id, err)
	}
	return &review, nil
}

// GetByProductAndAuthor retrieves the author's review of a product.
func (r *GORMReviewRepository) GetByProductAndAuthor(productID, authorID string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "product_id = ? AND author_id = ?", productID, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review by %s for product %s: %w", authorID, productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review for product %s: %w", productID, err)
	}
	return &review, nil
}

// ListByProduct returns a keyset page of a product's reviews, newest first.
func (r *GORMReviewRepository) ListByProduct(productID string, before time.Time, beforeID string, limit int) ([]models.Review, error) {
	q := r.db.Where("product_id = ?", productID)
	if !before.IsZero() {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", before, before, beforeID)
	}
	var reviews []models.Review
	if err := q.Order("created_at desc, id desc").Limit(limit).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

// Create inserts a new review. The composite unique index on
// (product_id, author_id) rejects a second review from the same author.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("review for product %s by %s: %w", review.ProductID, review.AuthorID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Delete removes a review. Moderation only.
func (r *GORMReviewRepository) Delete(id string) error {
	res := r.db.Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
