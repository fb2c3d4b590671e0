package services

import (
	"fmt"
	"log"
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/google/uuid"
)

// PaymentService settles orders through the payment gateway and applies
// refunds against the refundable balance.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	gateway     PaymentGateway
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repositories.PaymentRepository, orderRepo repositories.OrderRepository, gateway PaymentGateway) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
	}
}

// PayOrder charges a pending order for its full total and marks the
// order paid. Only the buyer may pay their own order.
func (s *PaymentService) PayOrder(actorID, orderID, currency string) (*models.Payment, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != actorID {
		return nil, fmt.Errorf("order %s belongs to another buyer: %w", orderID, ErrForbidden)
	}
	if order.Status != models.OrderPending {
		return nil, fmt.Errorf("order %s is %s, only pending orders can be paid: %w", orderID, order.Status, ErrIllegalTransition)
	}
	if order.TotalCents <= 0 {
		return nil, fmt.Errorf("order %s total: %w", orderID, ErrInvalidAmount)
	}

	chargeRef, err := s.gateway.Charge(orderID, order.TotalCents, currency)
	if err != nil {
		return nil, fmt.Errorf("gateway rejected charge for order %s: %w", orderID, err)
	}

	payment := &models.Payment{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		BuyerID:   order.BuyerID,
		Amount:    order.TotalCents,
		Currency:  currency,
		Status:    models.PaymentSucceeded,
		ChargeRef: chargeRef,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		// The charge already settled; void it before surfacing the
		// error so a retried payment starts from a clean slate.
		if voidErr := s.gateway.Refund(chargeRef, order.TotalCents); voidErr != nil {
			log.Printf("Warning: charge %s for order %s not recorded and could not be voided: %v", chargeRef, orderID, voidErr)
		}
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(orderID, models.OrderPaid); err != nil {
		log.Printf("Warning: payment %s recorded but order %s not marked paid: %v", payment.ID, orderID, err)
	}
	return payment, nil
}

// GetPayment retrieves a payment. Only the paying buyer or an admin.
func (s *PaymentService) GetPayment(actorID, role, id string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment.BuyerID != actorID && role != models.RoleAdmin {
		return nil, fmt.Errorf("payment %s belongs to another buyer: %w", id, ErrForbidden)
	}
	return payment, nil
}

// ListRefunds returns a payment's refunds. Only the paying buyer or an
// admin.
func (s *PaymentService) ListRefunds(actorID, role, paymentID string) ([]models.Refund, error) {
	if _, err := s.GetPayment(actorID, role, paymentID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListRefunds(paymentID)
}

// CreateRefund refunds part of a payment. For requested amount A,
// original amount O and already-refunded total R, the accepted amount
// is min(A, O-R); the request is rejected when A <= 0 or O-R <= 0. A
// refund that empties the balance flips the payment, and its order, to
// refunded.
func (s *PaymentService) CreateRefund(actorID, role, paymentID string, requested int64, reason string) (*models.Refund, error) {
	payment, err := s.GetPayment(actorID, role, paymentID)
	if err != nil {
		return nil, err
	}
	if requested <= 0 {
		return nil, fmt.Errorf("requested refund of %d cents: %w", requested, ErrInvalidAmount)
	}
	refundable := payment.Refundable()
	if refundable <= 0 {
		return nil, fmt.Errorf("payment %s: %w", paymentID, repositories.ErrRefundExceeded)
	}

	accepted := requested
	if accepted > refundable {
		accepted = refundable
	}

	if err := s.gateway.Refund(payment.ChargeRef, accepted); err != nil {
		return nil, fmt.Errorf("gateway rejected refund for payment %s: %w", paymentID, err)
	}

	newStatus := models.PaymentSucceeded
	if accepted == refundable {
		newStatus = models.PaymentRefunded
	}
	refund := &models.Refund{
		ID:        uuid.New().String(),
		PaymentID: paymentID,
		Amount:    accepted,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	if err := s.paymentRepo.ApplyRefund(refund, newStatus); err != nil {
		return nil, err
	}

	if newStatus == models.PaymentRefunded {
		if err := s.orderRepo.UpdateStatus(payment.OrderID, models.OrderRefunded); err != nil {
			log.Printf("Warning: payment %s fully refunded but order %s not updated: %v", paymentID, payment.OrderID, err)
		}
	}
	return refund, nil
}
