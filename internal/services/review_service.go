package services

import (
	"errors"
	"fmt"
	"log"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
)

// ReviewService handles business logic related to product reviews and
// keeps the product rating aggregate in sync.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewReviewService creates a new ReviewService. publisher may be nil.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// CreateReview records the author's review of a product. An author may
// review each product once.
func (s *ReviewService) CreateReview(authorID string, review *models.Review) error {
	product, err := s.productRepo.GetByID(review.ProductID)
	if err != nil {
		return err
	}

	if existing, err := s.reviewRepo.GetByProductAndAuthor(review.ProductID, authorID); err == nil && existing != nil {
		return fmt.Errorf("product %s already reviewed by %s: %w", review.ProductID, authorID, repositories.ErrDuplicate)
	}

	review.AuthorID = authorID
	if err := s.reviewRepo.Create(review); err != nil {
		return err
	}

	if err := s.productRepo.AddRating(review.ProductID, review.Rating, 1); err != nil {
		log.Printf("Warning: failed to update rating aggregate for product %s: %v", review.ProductID, err)
	}

	if s.publisher != nil {
		event := ReviewCreatedEvent{
			ReviewID:  review.ID,
			ProductID: review.ProductID,
			SellerID:  product.SellerID,
			AuthorID:  authorID,
			Rating:    review.Rating,
		}
		if err := s.publisher.Publish(EventReviewCreated, event); err != nil {
			log.Printf("Warning: Failed to publish review created event for review %s: %v", review.ID, err)
		}
	}
	return nil
}

// ListByProduct returns one page of a product's reviews plus the next
// cursor, empty when this page is the last.
func (s *ReviewService) ListByProduct(productID, cursor string, limit int) ([]models.Review, string, error) {
	before, beforeID, err := DecodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	reviews, err := s.reviewRepo.ListByProduct(productID, before, beforeID, limit)
	if err != nil {
		return nil, "", err
	}
	next := ""
	if len(reviews) == limit && limit > 0 {
		last := reviews[len(reviews)-1]
		next = EncodeCursor(last.CreatedAt, last.ID)
	}
	return reviews, next, nil
}

// DeleteReview removes a review and rolls its rating back out of the
// product aggregate. Admin moderation only; the handler gates the role.
func (s *ReviewService) DeleteReview(id string) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(id); err != nil {
		return err
	}
	if err := s.productRepo.AddRating(review.ProductID, -review.Rating, -1); err != nil {
		// The product may have been deleted since; the aggregate is gone
		// with it.
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Warning: failed to roll back rating aggregate for product %s: %v", review.ProductID, err)
		}
	}
	return nil
}
