package models

import (
	"time"
)

// TokenPurpose distinguishes the flows a verification token can serve.
type TokenPurpose string

const (
	// TokenPurposeVerifyEmail confirms ownership of a registration email.
	TokenPurposeVerifyEmail TokenPurpose = "verify_email"
	// TokenPurposeResetPassword authorizes a password reset.
	TokenPurposeResetPassword TokenPurpose = "reset_password"
)

// VerificationToken is a single-use, expiring token emailed to a user.
type VerificationToken struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;index" json:"user_id"`
	Token     string       `gorm:"not null;uniqueIndex" json:"-"`
	Purpose   TokenPurpose `gorm:"type:varchar(30);not null" json:"purpose"`
	ExpiresAt time.Time    `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time    `json:"created_at"`
}

// TableName specifies the table name for GORM
func (VerificationToken) TableName() string {
	return "verification_tokens"
}

// Expired reports whether the token is past its expiry.
func (t *VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
