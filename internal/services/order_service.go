package services

import (
	"fmt"
	"log"
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/google/uuid"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// GetAllOrders retrieves all orders. Admin console only.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrder retrieves a single order. Only the buyer or an admin may
// read it.
func (s *OrderService) GetOrder(actorID, role, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != actorID && role != models.RoleAdmin {
		return nil, fmt.Errorf("order %s belongs to another buyer: %w", id, ErrForbidden)
	}
	return order, nil
}

// ListByBuyer returns the buyer's orders.
func (s *OrderService) ListByBuyer(buyerID string) ([]models.Order, error) {
	return s.orderRepo.ListByBuyer(buyerID)
}

// ListBySeller returns orders containing the seller's products.
func (s *OrderService) ListBySeller(sellerID string) ([]models.Order, error) {
	return s.orderRepo.ListBySeller(sellerID)
}

// CreateOrder places an order for the given buyer. Each item's unit
// price is captured from the product at order time; the repository
// reserves stock atomically.
func (s *OrderService) CreateOrder(buyerID string, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("an order needs at least one item")
	}

	var totalCents int64
	processedItems := make([]models.OrderItem, 0, len(items))
	sellerSet := make(map[string]struct{})

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("quantity for product %s must be at least 1", item.ProductID)
		}
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", item.ProductID, err)
		}
		if product.Status != models.ProductActive {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, ErrInactiveProduct)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
				product.Name, item.Quantity, product.Stock, repositories.ErrInsufficientStock)
		}

		processedItems = append(processedItems, models.OrderItem{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents, // price at the time of order
		})
		totalCents += product.PriceCents * int64(item.Quantity)
		sellerSet[product.SellerID] = struct{}{}
	}

	newOrder := &models.Order{
		ID:         uuid.New().String(),
		BuyerID:    buyerID,
		Items:      processedItems,
		TotalCents: totalCents,
		Status:     models.OrderPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, err
	}

	sellerIDs := make([]string, 0, len(sellerSet))
	for sellerID := range sellerSet {
		sellerIDs = append(sellerIDs, sellerID)
	}
	s.publish(EventOrderCreated, OrderCreatedEvent{
		OrderID:    newOrder.ID,
		BuyerID:    newOrder.BuyerID,
		SellerIDs:  sellerIDs,
		TotalCents: newOrder.TotalCents,
	})

	return newOrder, nil
}

// UpdateOrderStatus moves an order along its lifecycle. Illegal
// transitions are rejected.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.OrderPending:   true,
		models.OrderPaid:      true,
		models.OrderShipped:   true,
		models.OrderDelivered: true,
		models.OrderCancelled: true,
		models.OrderRefunded:  true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("invalid order status: %s", status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !models.CanTransition(order.Status, status) {
		return fmt.Errorf("order %s cannot move from %s to %s: %w", id, order.Status, status, ErrIllegalTransition)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}

func (s *OrderService) publish(eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(eventType, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", eventType, err)
	}
}
