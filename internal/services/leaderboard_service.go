package services

import (
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/pkg/cache"
)

const (
	leaderboardCacheKey = "leaderboard:sellers"
	leaderboardCacheTTL = time.Minute
)

// LeaderboardService ranks sellers by delivered sales volume. The
// aggregate is an expensive join, so results are cached briefly.
type LeaderboardService struct {
	orderRepo repositories.OrderRepository
	cache     *cache.Cache
}

// NewLeaderboardService creates a new LeaderboardService. cache may be nil.
func NewLeaderboardService(orderRepo repositories.OrderRepository, c *cache.Cache) *LeaderboardService {
	return &LeaderboardService{
		orderRepo: orderRepo,
		cache:     c,
	}
}

// TopSellers returns up to limit sellers, best sellers first.
func (s *LeaderboardService) TopSellers(limit int) ([]repositories.SellerSales, error) {
	var cached []repositories.SellerSales
	if s.cache.Get(leaderboardCacheKey, &cached) && len(cached) >= limit {
		return cached[:limit], nil
	}
	rows, err := s.orderRepo.SellerSales(models.OrderDelivered, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(leaderboardCacheKey, rows, leaderboardCacheTTL); err != nil {
		return rows, nil
	}
	return rows, nil
}
