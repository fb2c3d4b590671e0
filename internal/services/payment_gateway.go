package services

import "github.com/google/uuid"

// PaymentGateway is the port to the external payments provider. The
// provider owns the actual money movement; this service only records
// outcomes and enforces the refundable balance.
type PaymentGateway interface {
	// Charge settles a charge and returns the provider's reference.
	Charge(orderID string, amountCents int64, currency string) (string, error)
	// Refund returns part of a settled charge to the payer.
	Refund(chargeRef string, amountCents int64) error
}

// LocalGateway is an in-process gateway for development and tests. It
// accepts every charge and refund.
type LocalGateway struct{}

// Charge implements PaymentGateway.
func (LocalGateway) Charge(orderID string, amountCents int64, currency string) (string, error) {
	return "local-" + uuid.New().String(), nil
}

// Refund implements PaymentGateway.
func (LocalGateway) Refund(chargeRef string, amountCents int64) error {
	return nil
}
