package repository

import (
	"context"
	"time"

	"kindred/internal/models"
	"kindred/internal/observability"

	"gorm.io/gorm"
)

// StatsRepository aggregates counts for the admin dashboard
type StatsRepository interface {
	UserCounts(ctx context.Context) (total, banned, newToday, newThisWeek int64, err error)
	EngagementCounts(ctx context.Context) (matches, messages, photos int64, err error)
	ActivePremiumCount(ctx context.Context) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) UserCounts(ctx context.Context) (total, banned, newToday, newThisWeek int64, err error) {
	defer observability.TrackQuery("aggregate", "users")()
	db := r.db.WithContext(ctx).Model(&models.User{})

	if err = db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, 0, 0, models.NewInternalError(err)
	}
	if err = db.Session(&gorm.Session{}).Where("is_banned = ?", true).Count(&banned).Error; err != nil {
		return 0, 0, 0, 0, models.NewInternalError(err)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err = db.Session(&gorm.Session{}).Where("created_at >= ?", startOfDay).Count(&newToday).Error; err != nil {
		return 0, 0, 0, 0, models.NewInternalError(err)
	}
	if err = db.Session(&gorm.Session{}).Where("created_at >= ?", now.AddDate(0, 0, -7)).Count(&newThisWeek).Error; err != nil {
		return 0, 0, 0, 0, models.NewInternalError(err)
	}
	return total, banned, newToday, newThisWeek, nil
}

func (r *statsRepository) EngagementCounts(ctx context.Context) (matches, messages, photos int64, err error) {
	defer observability.TrackQuery("aggregate", "interactions")()
	if err = r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("status = ?", models.InteractionStatusAccepted).
		Count(&matches).Error; err != nil {
		return 0, 0, 0, models.NewInternalError(err)
	}
	if err = r.db.WithContext(ctx).Model(&models.Message{}).Count(&messages).Error; err != nil {
		return 0, 0, 0, models.NewInternalError(err)
	}
	if err = r.db.WithContext(ctx).Model(&models.Photo{}).Count(&photos).Error; err != nil {
		return 0, 0, 0, models.NewInternalError(err)
	}
	return matches, messages, photos, nil
}

func (r *statsRepository) ActivePremiumCount(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("aggregate", "subscriptions")()
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("plan = ? AND status = ?", models.PlanPremium, models.SubscriptionStatusActive).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
