package models

import "time"

// Order statuses. Transitions are enforced by the order service:
// pending -> paid -> shipped -> delivered; pending and paid may be
// cancelled; delivered may become refunded through the payment service.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"
)

// OrderItem represents a single line within an order. UnitPriceCents is
// the product price captured at order time; later price changes do not
// affect existing orders.
type OrderItem struct {
	ID             uint   `json:"-" gorm:"primaryKey"`
	OrderID        string `json:"-" gorm:"index;type:varchar(36)"`
	ProductID      string `json:"product_id" gorm:"type:varchar(36)" validate:"required,uuid"`
	Quantity       int    `json:"quantity" validate:"required,gte=1"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Order represents a buyer's order.
type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BuyerID    string      `json:"buyer_id" gorm:"index;type:varchar(36)"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalCents int64       `json:"total_cents"`
	Status     string      `json:"status" gorm:"type:varchar(16)"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// orderTransitions lists the legal next statuses for each order status.
var orderTransitions = map[string][]string{
	OrderPending:   {OrderPaid, OrderCancelled},
	OrderPaid:      {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
	OrderDelivered: {OrderRefunded},
}

// CanTransition reports whether an order may move from one status to
// another. Cancelled and refunded are terminal.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
