package handlers

import (
	"log"

	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin console routes: user management, the
// full order book and review moderation. The router mounts it behind
// the admin role guard.
type AdminHandler struct {
	userService    *services.UserService
	orderService   *services.OrderService
	productService *services.ProductService
	reviewService  *services.ReviewService
	validate       *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService *services.UserService, orderService *services.OrderService, productService *services.ProductService, reviewService *services.ReviewService) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		orderService:   orderService,
		productService: productService,
		reviewService:  reviewService,
		validate:       validation.New(),
	}
}

// RegisterRoutes registers the admin console routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users", h.HandleListUsers)
	router.Patch("/users/:id/role", h.HandleChangeRole)
	router.Get("/orders", h.HandleListOrders)
	router.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
	router.Get("/products", h.HandleListProducts)
	router.Delete("/reviews/:id", h.HandleDeleteReview)
}

// HandleListUsers returns every account.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, "Could not list users", err)
	}
	return c.JSON(users)
}

// RoleRequest represents the request body for changing a user's role.
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=buyer seller admin"`
}

// HandleChangeRole sets a user's role.
func (h *AdminHandler) HandleChangeRole(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing role request body: %v", err)
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

	user, err := h.userService.ChangeRole(c.Params("id"), req.Role)
	if err != nil {
		log.Printf("Error changing role for user %s: %v", c.Params("id"), err)
		return respondError(c, "Could not change role", err)
	}
	return c.JSON(user)
}

// HandleListOrders returns the full order book.
func (h *AdminHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// StatusRequest represents the request body for an order status change.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled refunded"`
}

// HandleUpdateOrderStatus moves an order along its lifecycle.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status request body: %v", err)
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

	orderID := c.Params("id")
	if err := h.orderService.UpdateOrderStatus(orderID, req.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return respondError(c, "Could not update order status", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
	})
}

// HandleListProducts returns every product regardless of status.
func (h *AdminHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleDeleteReview removes a review. Moderation only.
func (h *AdminHandler) HandleDeleteReview(c *fiber.Ctx) error {
	reviewID := c.Params("id")
	if err := h.reviewService.DeleteReview(reviewID); err != nil {
		log.Printf("Error deleting review %s: %v", reviewID, err)
		return respondError(c, "Could not delete review", err)
	}
	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
	})
}
