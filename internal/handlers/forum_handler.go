package handlers

import (
	"log"

	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ForumHandler handles HTTP requests for the discussion forum.
type ForumHandler struct {
	service  *services.ForumService
	validate *validator.Validate
}

// NewForumHandler creates a new ForumHandler.
func NewForumHandler(service *services.ForumService) *ForumHandler {
	return &ForumHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterPublicRoutes registers the read-only forum routes.
func (h *ForumHandler) RegisterPublicRoutes(router fiber.Router) {
	forumRoutes := router.Group("/forum")
	forumRoutes.Get("/categories", h.HandleListCategories)
	forumRoutes.Get("/categories/:slug/threads", h.HandleListThreads)
	forumRoutes.Get("/threads/:id/posts", h.HandleListPosts)
}

// RegisterRoutes registers the authenticated forum routes.
func (h *ForumHandler) RegisterRoutes(router fiber.Router) {
	forumRoutes := router.Group("/forum")
	forumRoutes.Post("/categories/:slug/threads", h.HandleCreateThread)
	forumRoutes.Post("/threads/:id/posts", h.HandleCreatePost)
}

// RegisterAdminRoutes registers the moderation routes.
func (h *ForumHandler) RegisterAdminRoutes(router fiber.Router) {
	forumRoutes := router.Group("/forum")
	forumRoutes.Post("/categories", h.HandleCreateCategory)
	forumRoutes.Patch("/threads/:id", h.HandleSetThreadFlags)
}

// HandleListCategories returns every forum category.
func (h *ForumHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return respondError(c, "Could not list categories", err)
	}
	return c.JSON(categories)
}

// CategoryRequest represents the request body for creating a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=3,max=50"`
}

// HandleCreateCategory creates a forum category.
func (h *ForumHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing category request body: %v", err)
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

	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		log.Printf("Error creating category: %v", err)
		return respondError(c, "Could not create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleListThreads returns one page of a category's threads.
func (h *ForumHandler) HandleListThreads(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryBySlug(c.Params("slug"))
	if err != nil {
		log.Printf("Error resolving category %s: %v", c.Params("slug"), err)
		return respondError(c, "Could not find category", err)
	}
	threads, next, err := h.service.ListThreads(category.ID, c.Query("cursor"), pageLimit(c))
	if err != nil {
		log.Printf("Error listing threads for category %s: %v", category.ID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not list threads",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"threads":     threads,
		"next_cursor": next,
	})
}

// ThreadRequest represents the request body for opening a thread.
type ThreadRequest struct {
	Title string `json:"title" validate:"required,min=3,max=200"`
	Body  string `json:"body" validate:"required,min=1,max=5000"`
}

// HandleCreateThread opens a thread in a category.
func (h *ForumHandler) HandleCreateThread(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryBySlug(c.Params("slug"))
	if err != nil {
		log.Printf("Error resolving category %s: %v", c.Params("slug"), err)
		return respondError(c, "Could not find category", err)
	}

	var req ThreadRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing thread request body: %v", err)
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

	thread, err := h.service.CreateThread(category.ID, CallerID(c), req.Title, req.Body)
	if err != nil {
		log.Printf("Error creating thread: %v", err)
		return respondError(c, "Could not create thread", err)
	}
	return c.Status(fiber.StatusCreated).JSON(thread)
}

// HandleListPosts returns one page of a thread's posts, oldest first.
func (h *ForumHandler) HandleListPosts(c *fiber.Ctx) error {
	posts, next, err := h.service.ListPosts(c.Params("id"), c.Query("cursor"), pageLimit(c))
	if err != nil {
		log.Printf("Error listing posts for thread %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not list posts",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"posts":       posts,
		"next_cursor": next,
	})
}

// PostRequest represents the request body for replying to a thread.
type PostRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

// HandleCreatePost replies to a thread.
func (h *ForumHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing post request body: %v", err)
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

	post, err := h.service.AddPost(c.Params("id"), CallerID(c), CallerRole(c), req.Body)
	if err != nil {
		log.Printf("Error creating post in thread %s: %v", c.Params("id"), err)
		return respondError(c, "Could not create post", err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ThreadFlagsRequest represents the request body for pinning or locking
// a thread. Omitted fields are left unchanged.
type ThreadFlagsRequest struct {
	Pinned *bool `json:"pinned"`
	Locked *bool `json:"locked"`
}

// HandleSetThreadFlags pins or locks a thread.
func (h *ForumHandler) HandleSetThreadFlags(c *fiber.Ctx) error {
	var req ThreadFlagsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing thread flags request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	thread, err := h.service.SetThreadFlags(c.Params("id"), req.Pinned, req.Locked)
	if err != nil {
		log.Printf("Error updating thread %s: %v", c.Params("id"), err)
		return respondError(c, "Could not update thread", err)
	}
	return c.JSON(thread)
}
