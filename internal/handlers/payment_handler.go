package handlers

import (
	"log"

	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for payments and refunds.
type PaymentHandler struct {
	service  *services.PaymentService
	validate *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the payment routes.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Post("/", h.HandlePayOrder)
	paymentRoutes.Get("/:id", h.HandleGetPayment)
	paymentRoutes.Get("/:id/refunds", h.HandleListRefunds)
	paymentRoutes.Post("/:id/refunds", h.HandleCreateRefund)
}

// PaymentRequest represents the request body for paying an order.
type PaymentRequest struct {
	OrderID  string `json:"order_id" validate:"required,uuid"`
	Currency string `json:"currency" validate:"required,len=3,uppercase"`
}

// HandlePayOrder charges a pending order for its full total.
func (h *PaymentHandler) HandlePayOrder(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validation.ErrorMap(err),
		})
	}

	payment, err := h.service.PayOrder(CallerID(c), req.OrderID, req.Currency)
	if err != nil {
		log.Printf("Error paying order %s: %v", req.OrderID, err)
		return respondError(c, "Could not process payment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// HandleGetPayment retrieves a single payment.
func (h *PaymentHandler) HandleGetPayment(c *fiber.Ctx) error {
	payment, err := h.service.GetPayment(CallerID(c), CallerRole(c), c.Params("id"))
	if err != nil {
		log.Printf("Error getting payment %s: %v", c.Params("id"), err)
		return respondError(c, "Could not retrieve payment", err)
	}
	return c.JSON(payment)
}

// HandleListRefunds returns a payment's refunds.
func (h *PaymentHandler) HandleListRefunds(c *fiber.Ctx) error {
	refunds, err := h.service.ListRefunds(CallerID(c), CallerRole(c), c.Params("id"))
	if err != nil {
		log.Printf("Error listing refunds for payment %s: %v", c.Params("id"), err)
		return respondError(c, "Could not list refunds", err)
	}
	return c.JSON(refunds)
}

// RefundRequest represents the request body for requesting a refund.
type RefundRequest struct {
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"omitempty,max=200"`
}

// HandleCreateRefund refunds part of a payment. The accepted amount is
// clamped to the refundable balance.
func (h *PaymentHandler) HandleCreateRefund(c *fiber.Ctx) error {
	var req RefundRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing refund request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validation.ErrorMap(err),
		})
	}

	refund, err := h.service.CreateRefund(CallerID(c), CallerRole(c), c.Params("id"), req.AmountCents, req.Reason)
	if err != nil {
		log.Printf("Error creating refund for payment %s: %v", c.Params("id"), err)
		return respondError(c, "Could not create refund", err)
	}
	return c.Status(fiber.StatusCreated).JSON(refund)
}
