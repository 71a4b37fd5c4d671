package service

import (
	"context"
	"testing"

	"kindred/internal/models"
)

type statsRepoStub struct {
	userCountsFn         func(context.Context) (int64, int64, int64, int64, error)
	engagementCountsFn   func(context.Context) (int64, int64, int64, error)
	activePremiumCountFn func(context.Context) (int64, error)
}

func (s *statsRepoStub) UserCounts(ctx context.Context) (int64, int64, int64, int64, error) {
	return s.userCountsFn(ctx)
}
func (s *statsRepoStub) EngagementCounts(ctx context.Context) (int64, int64, int64, error) {
	return s.engagementCountsFn(ctx)
}
func (s *statsRepoStub) ActivePremiumCount(ctx context.Context) (int64, error) {
	return s.activePremiumCountFn(ctx)
}

func TestAdminServiceStatsAggregation(t *testing.T) {
	stats := &statsRepoStub{
		userCountsFn: func(context.Context) (int64, int64, int64, int64, error) {
			return 100, 4, 3, 12, nil
		},
		engagementCountsFn: func(context.Context) (int64, int64, int64, error) {
			return 40, 250, 180, nil
		},
		activePremiumCountFn: func(context.Context) (int64, error) {
			return 10, nil
		},
	}

	svc := NewAdminService(stats, noopUserRepo())
	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Users.Total != 100 || got.Users.Active != 96 || got.Users.Banned != 4 {
		t.Fatalf("unexpected user stats: %#v", got.Users)
	}
	if got.Engagement.AvgMessages != "2.50" {
		t.Fatalf("expected avg 2.50, got %s", got.Engagement.AvgMessages)
	}
	if got.Revenue.MonthlyRevenue != "99.90" {
		t.Fatalf("expected monthly 99.90, got %s", got.Revenue.MonthlyRevenue)
	}
	if got.Revenue.AnnualRevenue != "1198.80" {
		t.Fatalf("expected annual 1198.80, got %s", got.Revenue.AnnualRevenue)
	}
}

func TestAdminServiceSetBannedSelf(t *testing.T) {
	svc := NewAdminService(&statsRepoStub{}, noopUserRepo())
	err := svc.SetBanned(context.Background(), 1, 1, true)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestAdminServiceSetRoleInvalid(t *testing.T) {
	svc := NewAdminService(&statsRepoStub{}, noopUserRepo())
	err := svc.SetRole(context.Background(), 1, 2, models.UserRole("superuser"))
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestAdminServiceSetRoleSelfDemotion(t *testing.T) {
	svc := NewAdminService(&statsRepoStub{}, noopUserRepo())
	err := svc.SetRole(context.Background(), 1, 1, models.UserRoleMember)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestAdminServiceSetRolePromote(t *testing.T) {
	users := noopUserRepo()
	var gotID uint
	var gotRole models.UserRole
	users.setRoleFn = func(_ context.Context, id uint, role models.UserRole) error {
		gotID, gotRole = id, role
		return nil
	}

	svc := NewAdminService(&statsRepoStub{}, users)
	if err := svc.SetRole(context.Background(), 1, 2, models.UserRoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != 2 || gotRole != models.UserRoleAdmin {
		t.Fatalf("unexpected role change: %d -> %s", gotID, gotRole)
	}
}
