package models

import "time"

// Payment statuses.
const (
	PaymentSucceeded = "succeeded"
	PaymentRefunded  = "refunded"
)

// Payment represents a settled charge against an order. AmountCents is
// the charged total; the refundable balance is AmountCents minus the
// sum of accepted refunds.
type Payment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string    `json:"order_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required,uuid"`
	BuyerID   string    `json:"buyer_id" gorm:"index;type:varchar(36)"`
	Amount    int64     `json:"amount_cents" gorm:"column:amount_cents" validate:"gte=0"`
	Currency  string    `json:"currency" gorm:"type:varchar(3)" validate:"required,len=3,uppercase"`
	Status    string    `json:"status" gorm:"type:varchar(16)"`
	ChargeRef string    `json:"-" gorm:"type:varchar(64)"`
	Refunded  int64     `json:"refunded_cents" gorm:"column:refunded_cents"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Refundable returns the remaining refundable balance.
func (p *Payment) Refundable() int64 {
	return p.Amount - p.Refunded
}

// Refund represents a single accepted refund against a payment. The
// accepted amount is always clamped to the refundable balance at the
// time the refund was taken.
type Refund struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PaymentID string    `json:"payment_id" gorm:"index;type:varchar(36)"`
	Amount    int64     `json:"amount_cents" gorm:"column:amount_cents"`
	Reason    string    `json:"reason" validate:"omitempty,max=200"`
	CreatedAt time.Time `json:"created_at"`
}
