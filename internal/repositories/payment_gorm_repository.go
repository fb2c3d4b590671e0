package repositories

import (
	"errors"
	"fmt"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{db: db}
}

// Create inserts a payment row. The unique index on order_id rejects a
// second payment for the same order.
func (r *GORMPaymentRepository) Create(payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if err := r.db.Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("payment for order %s: %w", payment.OrderID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its ID.
func (r *GORMPaymentRepository) GetByID(id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment by ID %s: %w", id, err)
	}
	return &payment, nil
}

// GetByOrderID retrieves the payment for an order.
func (r *GORMPaymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment for order %s: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment for order %s: %w", orderID, err)
	}
	return &payment, nil
}

// ListRefunds returns a payment's refunds, oldest first.
func (r *GORMPaymentRepository) ListRefunds(paymentID string) ([]models.Refund, error) {
	var refunds []models.Refund
	if err := r.db.Where("payment_id = ?", paymentID).Order("created_at asc").Find(&refunds).Error; err != nil {
		return nil, fmt.Errorf("failed to list refunds for payment %s: %w", paymentID, err)
	}
	return refunds, nil
}

// ApplyRefund records a refund and advances the payment's refunded
// total in one transaction. The conditional UPDATE enforces the
// refundable balance even under concurrent refunds: if another refund
// consumed the balance first, no row matches and the whole transaction
// rolls back with ErrRefundExceeded.
func (r *GORMPaymentRepository) ApplyRefund(refund *models.Refund, newStatus string) error {
	if refund.ID == "" {
		refund.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND amount_cents - refunded_cents >= ?", refund.PaymentID, refund.Amount).
			Updates(map[string]interface{}{
				"refunded_cents": gorm.Expr("refunded_cents + ?", refund.Amount),
				"status":         newStatus,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("payment %s: %w", refund.PaymentID, ErrRefundExceeded)
		}
		return tx.Create(refund).Error
	})
	if err != nil {
		if errors.Is(err, ErrRefundExceeded) {
			return err
		}
		return fmt.Errorf("failed to apply refund: %w", err)
	}
	return nil
}
