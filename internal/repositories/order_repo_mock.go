package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Seller-scoped queries resolve item ownership through the product
// repository it is created with.
type MockOrderRepository struct {
	orders   map[string]models.Order
	products *MockProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// ListByBuyer returns a buyer's orders.
func (r *MockOrderRepository) ListByBuyer(buyerID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []models.Order
	for _, order := range r.orders {
		if order.BuyerID == buyerID {
			matches = append(matches, order)
		}
	}
	return matches, nil
}

// ListBySeller returns every order containing at least one of the
// seller's products.
func (r *MockOrderRepository) ListBySeller(sellerID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []models.Order
	for _, order := range r.orders {
		for _, item := range order.Items {
			product, err := r.products.GetByID(item.ProductID)
			if err != nil {
				continue
			}
			if product.SellerID == sellerID {
				matches = append(matches, order)
				break
			}
		}
	}
	return matches, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// SellerSales aggregates per-seller sales volume for orders in the
// given status, best sellers first.
func (r *MockOrderRepository) SellerSales(status string, limit int) ([]SellerSales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[string]*SellerSales)
	for _, order := range r.orders {
		if order.Status != status {
			continue
		}
		for _, item := range order.Items {
			product, err := r.products.GetByID(item.ProductID)
			if err != nil {
				continue
			}
			row, ok := totals[product.SellerID]
			if !ok {
				row = &SellerSales{SellerID: product.SellerID}
				totals[product.SellerID] = row
			}
			row.SalesCents += item.UnitPriceCents * int64(item.Quantity)
			row.Units += int64(item.Quantity)
		}
	}

	rows := make([]SellerSales, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SalesCents > rows[j].SalesCents })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
