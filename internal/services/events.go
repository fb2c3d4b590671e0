package services

// Event types published to the marketplace event queue.
const (
	EventOrderCreated  = "order.created"
	EventReviewCreated = "review.created"
	EventPostCreated   = "post.created"
)

// EventPublisher is the messaging port services publish through.
// *rabbitmq.Client satisfies it; tests substitute a mock.
type EventPublisher interface {
	Publish(eventType string, payload interface{}) error
}

// OrderCreatedEvent announces a new order to interested consumers
// (notification fan-out to each seller involved).
type OrderCreatedEvent struct {
	OrderID    string   `json:"order_id"`
	BuyerID    string   `json:"buyer_id"`
	SellerIDs  []string `json:"seller_ids"`
	TotalCents int64    `json:"total_cents"`
}

// ReviewCreatedEvent announces a new review to the product's seller.
type ReviewCreatedEvent struct {
	ReviewID  string `json:"review_id"`
	ProductID string `json:"product_id"`
	SellerID  string `json:"seller_id"`
	AuthorID  string `json:"author_id"`
	Rating    int    `json:"rating"`
}

// PostCreatedEvent announces a reply to a thread's author.
type PostCreatedEvent struct {
	PostID         string `json:"post_id"`
	ThreadID       string `json:"thread_id"`
	ThreadAuthorID string `json:"thread_author_id"`
	AuthorID       string `json:"author_id"`
}
