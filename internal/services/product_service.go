package services

import (
	"fmt"
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"
	"marketplace/pkg/cache"
)

const productCacheTTL = 5 * time.Minute

// ProductService handles business logic related to products: storefront
// browsing, the seller portal's catalog management and the admin view.
type ProductService struct {
	repo  repositories.ProductRepository
	cache *cache.Cache
}

// NewProductService creates a new ProductService. cache may be nil.
func NewProductService(repo repositories.ProductRepository, c *cache.Cache) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: c,
	}
}

func productCacheKey(id string) string {
	return "product:" + id
}

// GetAllProducts retrieves all products regardless of status. Admin only.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// ListActive returns one storefront page plus the cursor for the next
// page, empty when this page is the last.
func (s *ProductService) ListActive(category, cursor string, limit int) ([]models.Product, string, error) {
	before, beforeID, err := DecodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	products, err := s.repo.ListActive(category, before, beforeID, limit)
	if err != nil {
		return nil, "", err
	}
	next := ""
	if len(products) == limit && limit > 0 {
		last := products[len(products)-1]
		next = EncodeCursor(last.CreatedAt, last.ID)
	}
	return products, next, nil
}

// GetProductByID retrieves a single product, serving repeat reads from
// the cache.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	var cached models.Product
	if s.cache.Get(productCacheKey(id), &cached) {
		return &cached, nil
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(productCacheKey(id), product, productCacheTTL); err != nil {
		// Cache failures must not fail the read.
		return product, nil
	}
	return product, nil
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	return s.repo.GetBySlug(slug)
}

// ListBySeller returns a seller's own catalog.
func (s *ProductService) ListBySeller(sellerID string) ([]models.Product, error) {
	return s.repo.ListBySeller(sellerID)
}

// CreateProduct creates a product owned by the given seller. A missing
// slug is derived from the name.
func (s *ProductService) CreateProduct(sellerID string, product *models.Product) error {
	product.SellerID = sellerID
	if product.Slug == "" {
		product.Slug = validation.Slugify(product.Name)
	}
	if product.Status == "" {
		product.Status = models.ProductDraft
	}
	product.RatingCount = 0
	product.RatingSum = 0
	return s.repo.Create(product)
}

// UpdateProduct updates a product. Only the owning seller or an admin
// may change it; ownership and rating aggregates cannot be rewritten.
func (s *ProductService) UpdateProduct(actorID, role string, product *models.Product) error {
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing.SellerID != actorID && role != models.RoleAdmin {
		return fmt.Errorf("product %s belongs to another seller: %w", product.ID, ErrForbidden)
	}
	product.SellerID = existing.SellerID
	product.RatingCount = existing.RatingCount
	product.RatingSum = existing.RatingSum
	product.CreatedAt = existing.CreatedAt
	if product.Slug == "" {
		product.Slug = existing.Slug
	}
	if err := s.repo.Update(product); err != nil {
		return err
	}
	return s.cache.Del(productCacheKey(product.ID))
}

// DeleteProduct deletes a product. Only the owning seller or an admin.
func (s *ProductService) DeleteProduct(actorID, role, id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.SellerID != actorID && role != models.RoleAdmin {
		return fmt.Errorf("product %s belongs to another seller: %w", id, ErrForbidden)
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	return s.cache.Del(productCacheKey(id))
}
