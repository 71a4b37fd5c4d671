package service

import (
	"context"
	"testing"

	"kindred/internal/models"
)

type profileRepoStub struct {
	getByUserIDFn func(context.Context, uint) (*models.Profile, error)
	createFn      func(context.Context, *models.Profile) error
	updateFn      func(context.Context, *models.Profile) error
	discoverFn    func(context.Context, []uint, models.DiscoverFilters, int) ([]models.Profile, error)
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) Discover(ctx context.Context, excludeUserIDs []uint, filters models.DiscoverFilters, limit int) ([]models.Profile, error) {
	return s.discoverFn(ctx, excludeUserIDs, filters, limit)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(context.Context, uint) (*models.Profile, error) { return nil, nil },
		createFn:      func(context.Context, *models.Profile) error { return nil },
		updateFn:      func(context.Context, *models.Profile) error { return nil },
		discoverFn: func(context.Context, []uint, models.DiscoverFilters, int) ([]models.Profile, error) {
			return nil, nil
		},
	}
}

func TestProfileServiceCreateUnderage(t *testing.T) {
	svc := NewProfileService(noopProfileRepo(), noopInteractionRepo())
	_, err := svc.CreateProfile(context.Background(), 1, "hi", 17, "female", "Portland")
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestProfileServiceCreateMissingGender(t *testing.T) {
	svc := NewProfileService(noopProfileRepo(), noopInteractionRepo())
	_, err := svc.CreateProfile(context.Background(), 1, "hi", 25, "  ", "Portland")
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestProfileServiceCreateAlreadyExists(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(context.Context, uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: 1}, nil
	}

	svc := NewProfileService(repo, noopInteractionRepo())
	_, err := svc.CreateProfile(context.Background(), 1, "hi", 25, "female", "Portland")
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestProfileServiceUpdatePartial(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(context.Context, uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: 1, Bio: "old bio", Age: 25, Gender: "female", Location: "Portland"}, nil
	}
	var updated *models.Profile
	repo.updateFn = func(_ context.Context, profile *models.Profile) error {
		updated = profile
		return nil
	}

	svc := NewProfileService(repo, noopInteractionRepo())
	newBio := "new bio"
	profile, err := svc.UpdateProfile(context.Background(), 1, ProfileUpdate{Bio: &newBio})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || profile.Bio != "new bio" {
		t.Fatalf("bio not updated: %#v", updated)
	}
	// Untouched fields keep their values.
	if profile.Age != 25 || profile.Location != "Portland" {
		t.Fatalf("partial update clobbered other fields: %#v", profile)
	}
}

func TestProfileServiceUpdateInvalidAge(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(context.Context, uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: 1, Age: 25, Gender: "female"}, nil
	}

	svc := NewProfileService(repo, noopInteractionRepo())
	badAge := 15
	_, err := svc.UpdateProfile(context.Background(), 1, ProfileUpdate{Age: &badAge})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestProfileServiceDiscoverExcludesSelfAndSwiped(t *testing.T) {
	interactions := noopInteractionRepo()
	interactions.listReceiverIDsForFn = func(context.Context, uint) ([]uint, error) {
		return []uint{4, 9}, nil
	}

	repo := noopProfileRepo()
	var excluded []uint
	repo.discoverFn = func(_ context.Context, excludeUserIDs []uint, _ models.DiscoverFilters, _ int) ([]models.Profile, error) {
		excluded = excludeUserIDs
		return []models.Profile{}, nil
	}

	svc := NewProfileService(repo, interactions)
	if _, err := svc.Discover(context.Background(), 1, models.DiscoverFilters{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[uint]bool{1: true, 4: true, 9: true}
	if len(excluded) != len(want) {
		t.Fatalf("expected exclusions for self and prior swipes, got %v", excluded)
	}
	for _, id := range excluded {
		if !want[id] {
			t.Fatalf("unexpected exclusion %d in %v", id, excluded)
		}
	}
}

func TestProfileServiceDiscoverInvalidAgeRange(t *testing.T) {
	svc := NewProfileService(noopProfileRepo(), noopInteractionRepo())
	_, err := svc.Discover(context.Background(), 1, models.DiscoverFilters{MinAge: 40, MaxAge: 20})
	assertAppErrorCode(t, err, models.CodeValidation)
}
