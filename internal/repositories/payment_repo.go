package repositories

import "marketplace/internal/models"

// PaymentRepository defines the interface for payment and refund data
// access. ApplyRefund must be atomic: the refund row, the payment's
// refunded total and its status change land together or not at all,
// and the write is rejected when a concurrent refund already consumed
// the balance.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	GetByOrderID(orderID string) (*models.Payment, error)
	ListRefunds(paymentID string) ([]models.Refund, error)
	ApplyRefund(refund *models.Refund, newStatus string) error
}
