package handlers

import (
	"log"

	"marketplace/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardHandler serves the public seller leaderboard.
type LeaderboardHandler struct {
	service *services.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(service *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// RegisterRoutes registers the leaderboard route.
func (h *LeaderboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/sellers/leaderboard", h.HandleTopSellers)
}

// HandleTopSellers returns the best-selling sellers.
func (h *LeaderboardHandler) HandleTopSellers(c *fiber.Ctx) error {
	sellers, err := h.service.TopSellers(pageLimit(c))
	if err != nil {
		log.Printf("Error building seller leaderboard: %v", err)
		return respondError(c, "Could not build leaderboard", err)
	}
	return c.JSON(fiber.Map{
		"sellers": sellers,
	})
}
