package repository

import (
	"context"
	"errors"
	"strings"

	"kindred/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	// GetByUserID returns (nil, nil) when the user has no profile yet.
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	// Discover returns browseable profiles excluding the given user IDs,
	// newest first, with optional filters applied.
	Discover(ctx context.Context, excludeUserIDs []uint, filters models.DiscoverFilters, limit int) ([]models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewValidationError("Profile already exists. Use update endpoint.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) Discover(ctx context.Context, excludeUserIDs []uint, filters models.DiscoverFilters, limit int) ([]models.Profile, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(3)
		})

	if len(excludeUserIDs) > 0 {
		query = query.Where("user_id NOT IN (?)", excludeUserIDs)
	}
	if filters.MinAge > 0 {
		query = query.Where("age >= ?", filters.MinAge)
	}
	if filters.MaxAge > 0 {
		query = query.Where("age <= ?", filters.MaxAge)
	}
	if filters.Gender != "" && filters.Gender != "all" {
		query = query.Where("gender = ?", filters.Gender)
	}
	if filters.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filters.Location)+"%")
	}

	var profiles []models.Profile
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
