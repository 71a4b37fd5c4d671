package models

import (
	"time"
)

// SubscriptionPlan identifies the billing plan for a user.
type SubscriptionPlan string

const (
	// PlanFree is the default, unpaid plan.
	PlanFree SubscriptionPlan = "FREE"
	// PlanPremium is the paid Stripe-backed plan.
	PlanPremium SubscriptionPlan = "PREMIUM"
)

// SubscriptionStatus is the billing state reported by Stripe.
type SubscriptionStatus string

const (
	// SubscriptionStatusActive means the subscription is paid up.
	SubscriptionStatusActive SubscriptionStatus = "ACTIVE"
	// SubscriptionStatusInactive means no active paid subscription.
	SubscriptionStatusInactive SubscriptionStatus = "INACTIVE"
	// SubscriptionStatusCanceled means the subscription was canceled.
	SubscriptionStatusCanceled SubscriptionStatus = "CANCELED"
)

// PremiumMonthlyPriceUSD is used for admin revenue projections.
const PremiumMonthlyPriceUSD = 9.99

// Subscription records a user's billing state. One row per user; created
// lazily as FREE/INACTIVE the first time subscription status is read.
type Subscription struct {
	ID                   uint               `gorm:"primaryKey" json:"id"`
	UserID               uint               `gorm:"not null;uniqueIndex" json:"user_id"`
	Plan                 SubscriptionPlan   `gorm:"type:varchar(20);default:'FREE'" json:"plan"`
	Status               SubscriptionStatus `gorm:"type:varchar(20);default:'INACTIVE'" json:"status"`
	StripeCustomerID     string             `gorm:"index" json:"-"`
	StripeSubscriptionID string             `gorm:"index" json:"-"`
	StripePriceID        string             `json:"-"`
	CurrentPeriodEnd     *time.Time         `json:"current_period_end,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsPremiumActive reports whether the user currently has paid access.
func (s *Subscription) IsPremiumActive(now time.Time) bool {
	if s.Plan != PlanPremium || s.Status != SubscriptionStatusActive {
		return false
	}
	if s.CurrentPeriodEnd != nil && s.CurrentPeriodEnd.Before(now) {
		return false
	}
	return true
}
