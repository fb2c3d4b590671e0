package handlers

import (
	"errors"

	"marketplace/internal/repositories"
	"marketplace/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CallerID returns the authenticated user's id from the request context.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// CallerRole returns the authenticated user's role from the request context.
func CallerRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}

// respondError maps service and repository errors onto conventional
// status codes: 404 not found, 403 ownership/role, 409 uniqueness, 400
// bad input, 500 everything else.
func respondError(c *fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, repositories.ErrDuplicate):
		status = fiber.StatusConflict
	case errors.Is(err, repositories.ErrInsufficientStock),
		errors.Is(err, repositories.ErrRefundExceeded),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrThreadLocked),
		errors.Is(err, services.ErrIllegalTransition),
		errors.Is(err, services.ErrInactiveProduct):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
