package repositories

import "marketplace/internal/models"

// SellerSales is one leaderboard row: a seller's delivered sales volume.
type SellerSales struct {
	SellerID   string `json:"seller_id"`
	SalesCents int64  `json:"sales_cents"`
	Units      int64  `json:"units"`
}

// OrderRepository defines the interface for order data access. Create
// must atomically reserve stock for every item; it fails with
// ErrInsufficientStock when any product cannot cover its quantity.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	ListByBuyer(buyerID string) ([]models.Order, error)
	ListBySeller(sellerID string) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	// SellerSales aggregates per-seller sales for orders in the given
	// status, best sellers first.
	SellerSales(status string, limit int) ([]SellerSales, error)
}
