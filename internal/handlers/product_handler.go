package handlers

import (
	"log"
	"strconv"

	"marketplace/internal/models"
	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 20

// ProductHandler handles HTTP requests for products: the public
// storefront listing and the seller portal's catalog management.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterStorefrontRoutes registers the public browsing routes.
func (h *ProductHandler) RegisterStorefrontRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListActive)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// RegisterSellerRoutes registers the seller portal catalog routes.
func (h *ProductHandler) RegisterSellerRoutes(router fiber.Router) {
	sellerRoutes := router.Group("/products")
	sellerRoutes.Get("/", h.HandleListOwnProducts)
	sellerRoutes.Post("/", h.HandleCreateProduct)
	sellerRoutes.Put("/:id", h.HandleUpdateProduct)
	sellerRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// pageLimit parses the ?limit query, clamped to a sane range.
func pageLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		return defaultPageSize
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// HandleListActive returns one storefront page of active products.
func (h *ProductHandler) HandleListActive(c *fiber.Ctx) error {
	products, next, err := h.service.ListActive(c.Query("category"), c.Query("cursor"), pageLimit(c))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not list products",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"products":    products,
		"next_cursor": next,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return respondError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleListOwnProducts returns the calling seller's catalog.
func (h *ProductHandler) HandleListOwnProducts(c *fiber.Ctx) error {
	products, err := h.service.ListBySeller(CallerID(c))
	if err != nil {
		log.Printf("Error listing seller products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// ProductRequest represents the request body for creating or updating a
// product.
type ProductRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Slug        string `json:"slug" validate:"omitempty,slug"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Status      string `json:"status" validate:"omitempty,oneof=draft active archived"`
}

// HandleCreateProduct creates a product owned by the calling seller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
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

	product := models.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Category:    req.Category,
		Status:      req.Status,
	}
	if err := h.service.CreateProduct(CallerID(c), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates one of the calling seller's products.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
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

	product := models.Product{
		ID:          c.Params("id"),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Category:    req.Category,
		Status:      req.Status,
	}
	if err := h.service.UpdateProduct(CallerID(c), CallerRole(c), &product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return respondError(c, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes one of the calling seller's products.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(CallerID(c), CallerRole(c), productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return respondError(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
