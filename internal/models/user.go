// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole represents a user's authorization level.
type UserRole string

const (
	// UserRoleMember is the default role for registered users.
	UserRoleMember UserRole = "member"
	// UserRoleAdmin grants access to the moderation panel.
	UserRoleAdmin UserRole = "admin"
)

// User represents a registered account in Kindred.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Role          UserRole       `gorm:"type:varchar(20);default:'member'" json:"role"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	IsBanned      bool           `gorm:"default:false" json:"is_banned"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Photos  []Photo  `gorm:"foreignKey:UserID" json:"photos,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may access admin endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// PublicUser is the reduced user shape embedded in match and message payloads.
type PublicUser struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// Public converts a User to its public representation.
func (u *User) Public() PublicUser {
	pu := PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if len(u.Photos) > 0 {
		pu.PhotoURL = u.Photos[0].URL
	}
	return pu
}
