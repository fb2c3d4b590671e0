package handlers

import (
	"log"

	"marketplace/internal/models"
	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterPublicRoutes registers the review listing route.
func (h *ReviewHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/products/:id/reviews", h.HandleListReviews)
}

// RegisterRoutes registers the authenticated review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/products/:id/reviews", h.HandleCreateReview)
}

// HandleListReviews returns one page of a product's reviews.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	reviews, next, err := h.service.ListByProduct(c.Params("id"), c.Query("cursor"), pageLimit(c))
	if err != nil {
		log.Printf("Error listing reviews for product %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not list reviews",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"reviews":     reviews,
		"next_cursor": next,
	})
}

// ReviewRequest represents the request body for writing a review.
type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title  string `json:"title" validate:"omitempty,max=100"`
	Body   string `json:"body" validate:"omitempty,max=2000"`
}

// HandleCreateReview records the caller's review of a product.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing review request body: %v", err)
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

	review := models.Review{
		ProductID: c.Params("id"),
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Body,
	}
	if err := h.service.CreateReview(CallerID(c), &review); err != nil {
		log.Printf("Error creating review: %v", err)
		return respondError(c, "Could not create review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
