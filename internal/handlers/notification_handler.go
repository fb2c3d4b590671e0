package handlers

import (
	"log"

	"marketplace/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles HTTP requests for in-app notifications
// and delivery preferences.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notificationRoutes := router.Group("/notifications")
	notificationRoutes.Get("/", h.HandleList)
	notificationRoutes.Post("/read", h.HandleMarkRead)
	notificationRoutes.Put("/preferences", h.HandleUpdatePreferences)
}

// HandleList returns one page of the caller's notifications.
func (h *NotificationHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(CallerID(c), c.Query("cursor"), pageLimit(c))
	if err != nil {
		log.Printf("Error listing notifications: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not list notifications",
			"error":   err.Error(),
		})
	}
	return c.JSON(page)
}

// MarkReadRequest represents the request body for marking notifications
// read.
type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

// HandleMarkRead marks the caller's notifications as read.
func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	var req MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing mark-read request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if len(req.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "At least one notification id is required",
		})
	}

	if err := h.service.MarkRead(CallerID(c), req.IDs); err != nil {
		log.Printf("Error marking notifications read: %v", err)
		return respondError(c, "Could not mark notifications read", err)
	}
	return c.JSON(fiber.Map{
		"message": "Notifications marked read",
	})
}

// HandleUpdatePreferences toggles the caller's notification opt-ins.
func (h *NotificationHandler) HandleUpdatePreferences(c *fiber.Ctx) error {
	var prefs services.Preferences
	if err := c.BodyParser(&prefs); err != nil {
		log.Printf("Error parsing preferences request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.service.UpdatePreferences(CallerID(c), prefs)
	if err != nil {
		log.Printf("Error updating preferences: %v", err)
		return respondError(c, "Could not update preferences", err)
	}
	return c.JSON(fiber.Map{
		"message": "Preferences updated",
		"user":    user,
	})
}
