package service

import (
	"context"
	"fmt"

	"kindred/internal/cache"
	"kindred/internal/models"
	"kindred/internal/repository"
)

// AdminService provides the moderation panel operations.
type AdminService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
}

// NewAdminService returns a new AdminService.
func NewAdminService(statsRepo repository.StatsRepository, userRepo repository.UserRepository) *AdminService {
	return &AdminService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
	}
}

// Stats aggregates the dashboard counters. The result is cached briefly;
// dashboard numbers tolerate a minute of staleness.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	err := cache.CacheAside(ctx, cache.AdminStatsKey, &stats, cache.AdminStatsTTL, func() error {
		computed, err := s.computeStats(ctx)
		if err != nil {
			return err
		}
		stats = *computed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) computeStats(ctx context.Context) (*models.AdminStats, error) {
	total, banned, newToday, newThisWeek, err := s.statsRepo.UserCounts(ctx)
	if err != nil {
		return nil, err
	}
	matches, messages, photos, err := s.statsRepo.EngagementCounts(ctx)
	if err != nil {
		return nil, err
	}
	premium, err := s.statsRepo.ActivePremiumCount(ctx)
	if err != nil {
		return nil, err
	}

	avgMessages := 0.0
	if total > 0 {
		avgMessages = float64(messages) / float64(total)
	}
	monthly := float64(premium) * models.PremiumMonthlyPriceUSD

	return &models.AdminStats{
		Users: models.UserStats{
			Total:       total,
			Active:      total - banned,
			Banned:      banned,
			NewToday:    newToday,
			NewThisWeek: newThisWeek,
		},
		Engagement: models.EngagementStats{
			TotalMatches:  matches,
			TotalMessages: messages,
			TotalPhotos:   photos,
			AvgMessages:   fmt.Sprintf("%.2f", avgMessages),
		},
		Revenue: models.RevenueStats{
			PremiumSubscriptions: premium,
			MonthlyRevenue:       fmt.Sprintf("%.2f", monthly),
			AnnualRevenue:        fmt.Sprintf("%.2f", monthly*12),
		},
	}, nil
}

// ListUsers returns a page of registered users for the moderation panel.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SetBanned bans or unbans a user. Admins cannot ban themselves.
func (s *AdminService) SetBanned(ctx context.Context, adminID, userID uint, banned bool) error {
	if adminID == userID {
		return models.NewValidationError("Cannot change your own ban state")
	}
	return s.userRepo.SetBanned(ctx, userID, banned)
}

// SetRole changes a user's role. Admins cannot demote themselves.
func (s *AdminService) SetRole(ctx context.Context, adminID, userID uint, role models.UserRole) error {
	if role != models.UserRoleMember && role != models.UserRoleAdmin {
		return models.NewValidationError("Invalid role")
	}
	if adminID == userID && role != models.UserRoleAdmin {
		return models.NewValidationError("Cannot demote yourself")
	}
	return s.userRepo.SetRole(ctx, userID, role)
}
