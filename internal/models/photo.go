package models

import (
	"time"

	"gorm.io/gorm"
)

// Photo is a profile photo stored in object storage.
type Photo struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	URL       string         `gorm:"not null" json:"url"`
	ObjectKey string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Photo) TableName() string {
	return "photos"
}
