package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"kindred/internal/models"

	"gorm.io/gorm"
)

func seedProfile(t *testing.T, db *gorm.DB, userID uint, age int, gender, location string, createdAt time.Time) *models.Profile {
	t.Helper()
	profile := &models.Profile{UserID: userID, Age: age, Gender: gender, Location: location, CreatedAt: createdAt}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func TestProfileRepositoryOnePerUser(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Profile{UserID: 1, Age: 25, Gender: "female"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := repo.Create(ctx, &models.Profile{UserID: 1, Age: 30, Gender: "female"})
	if err == nil {
		t.Fatal("expected second profile for the same user to fail")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation error, got %#v", err)
	}
}

func TestProfileRepositoryGetByUserIDSoftNotFound(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewProfileRepository(db)

	profile, err := repo.GetByUserID(context.Background(), 42)
	if err != nil || profile != nil {
		t.Fatalf("expected (nil, nil), got %#v, %v", profile, err)
	}
}

func TestProfileRepositoryDiscoverFilters(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	for i, u := range []struct {
		userID   uint
		age      int
		gender   string
		location string
	}{
		{1, 25, "female", "Portland, OR"},
		{2, 35, "male", "Seattle, WA"},
		{3, 28, "female", "portland, oregon"},
		{4, 22, "nonbinary", "Austin, TX"},
	} {
		createTestUser(t, db, u.location+"-user@example.com")
		seedProfile(t, db, u.userID, u.age, u.gender, u.location, now.Add(time.Duration(i)*time.Minute))
	}

	// Age band.
	profiles, err := repo.Discover(ctx, nil, models.DiscoverFilters{MinAge: 24, MaxAge: 30}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles in age band, got %d", len(profiles))
	}

	// Gender "all" is a no-op filter.
	profiles, err = repo.Discover(ctx, nil, models.DiscoverFilters{Gender: "all"}, 20)
	if err != nil || len(profiles) != 4 {
		t.Fatalf("expected all 4 profiles, got %d, %v", len(profiles), err)
	}

	// Location match is case-insensitive substring.
	profiles, err = repo.Discover(ctx, nil, models.DiscoverFilters{Location: "PORTLAND"}, 20)
	if err != nil || len(profiles) != 2 {
		t.Fatalf("expected 2 portland profiles, got %d, %v", len(profiles), err)
	}

	// Exclusions drop already-swiped users.
	profiles, err = repo.Discover(ctx, []uint{1, 3}, models.DiscoverFilters{}, 20)
	if err != nil || len(profiles) != 2 {
		t.Fatalf("expected 2 profiles after exclusion, got %d, %v", len(profiles), err)
	}
	for _, p := range profiles {
		if p.UserID == 1 || p.UserID == 3 {
			t.Fatalf("excluded user %d leaked into feed", p.UserID)
		}
	}
}

func TestProfileRepositoryDiscoverNewestFirst(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	createTestUser(t, db, "old@example.com")
	createTestUser(t, db, "new@example.com")
	seedProfile(t, db, 1, 25, "female", "A", now.Add(-time.Hour))
	seedProfile(t, db, 2, 25, "female", "B", now)

	profiles, err := repo.Discover(ctx, nil, models.DiscoverFilters{}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 || profiles[0].UserID != 2 {
		t.Fatalf("expected newest profile first, got %#v", profiles)
	}
}
