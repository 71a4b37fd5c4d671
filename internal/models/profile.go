package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds the dating profile details for a user. One per user.
type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	Bio       string         `gorm:"type:text" json:"bio"`
	Age       int            `gorm:"not null" json:"age"`
	Gender    string         `gorm:"type:varchar(20);not null" json:"gender"`
	Location  string         `json:"location"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

const (
	// MinProfileAge is the minimum allowed profile age.
	MinProfileAge = 18
	// MaxProfileAge is the maximum allowed profile age.
	MaxProfileAge = 100
)

// ValidateAge checks the allowed profile age range.
func ValidateAge(age int) error {
	if age < MinProfileAge || age > MaxProfileAge {
		return NewValidationError("Age must be between 18 and 100")
	}
	return nil
}

// DiscoverFilters are the optional browse filters for the discovery feed.
type DiscoverFilters struct {
	MinAge   int
	MaxAge   int
	Gender   string
	Location string
}
