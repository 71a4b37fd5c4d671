package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a direct message between two matched users. Delivery is gated on
// an ACCEPTED interaction existing between sender and receiver; the gate is
// enforced on every send and read, not only at conversation creation.
type Message struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SenderID   uint           `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint           `gorm:"not null;index" json:"receiver_id"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	IsRead     bool           `gorm:"default:false" json:"is_read"`
	ReadAt     *time.Time     `json:"read_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// Conversation is the derived per-match thread view: the counterpart, the most
// recent message (if any), and the unread count from that counterpart.
type Conversation struct {
	User        PublicUser `json:"user"`
	LastMessage *Message   `json:"last_message"`
	MatchedAt   time.Time  `json:"matched_at"`
	UnreadCount int64      `json:"unread_count"`
}
