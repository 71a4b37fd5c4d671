package service

import (
	"context"
	"strings"

	"kindred/internal/cache"
	"kindred/internal/models"
	"kindred/internal/repository"
)

// DiscoverPageSize caps a single discovery feed response.
const DiscoverPageSize = 20

// ProfileService manages dating profiles and the discovery feed.
type ProfileService struct {
	profileRepo     repository.ProfileRepository
	interactionRepo repository.InteractionRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, interactionRepo repository.InteractionRepository) *ProfileService {
	return &ProfileService{
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
	}
}

// CreateProfile creates the user's profile. One profile per user.
func (s *ProfileService) CreateProfile(ctx context.Context, userID uint, bio string, age int, gender, location string) (*models.Profile, error) {
	if err := models.ValidateAge(age); err != nil {
		return nil, err
	}
	gender = strings.TrimSpace(strings.ToLower(gender))
	if gender == "" {
		return nil, models.NewValidationError("Gender is required")
	}

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Profile already exists. Use update endpoint.")
	}

	profile := &models.Profile{
		UserID:   userID,
		Bio:      strings.TrimSpace(bio),
		Age:      age,
		Gender:   gender,
		Location: strings.TrimSpace(location),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return profile, nil
}

// ProfileUpdate carries the optional fields of a profile update. Nil fields
// are left unchanged.
type ProfileUpdate struct {
	Bio      *string
	Age      *int
	Gender   *string
	Location *string
}

// UpdateProfile applies a partial update to the user's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", userID)
	}

	if update.Age != nil {
		if err := models.ValidateAge(*update.Age); err != nil {
			return nil, err
		}
		profile.Age = *update.Age
	}
	if update.Bio != nil {
		profile.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.Gender != nil {
		gender := strings.TrimSpace(strings.ToLower(*update.Gender))
		if gender == "" {
			return nil, models.NewValidationError("Gender is required")
		}
		profile.Gender = gender
	}
	if update.Location != nil {
		profile.Location = strings.TrimSpace(*update.Location)
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return profile, nil
}

// GetProfile returns the user's profile, served through the cache when warm.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.CacheAside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		p, err := s.profileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if p == nil {
			return models.NewNotFoundError("Profile", userID)
		}
		profile = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Discover returns browseable profiles for the user: everyone they have not
// yet acted on, excluding themselves, newest first.
func (s *ProfileService) Discover(ctx context.Context, userID uint, filters models.DiscoverFilters) ([]models.Profile, error) {
	if filters.MinAge != 0 || filters.MaxAge != 0 {
		if filters.MinAge < 0 || filters.MaxAge < 0 || (filters.MaxAge != 0 && filters.MinAge > filters.MaxAge) {
			return nil, models.NewValidationError("Invalid age range")
		}
	}

	interacted, err := s.interactionRepo.ListReceiverIDsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	exclude := append(interacted, userID)

	return s.profileRepo.Discover(ctx, exclude, filters, DiscoverPageSize)
}
