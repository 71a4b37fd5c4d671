package models

import (
	"strings"
	"time"
)

// InteractionStatus is the lifecycle state of a directed like/pass record.
type InteractionStatus string

const (
	// InteractionStatusPending is an unreciprocated like.
	InteractionStatusPending InteractionStatus = "PENDING"
	// InteractionStatusAccepted is a confirmed mutual match.
	InteractionStatusAccepted InteractionStatus = "ACCEPTED"
	// InteractionStatusRejected is a recorded pass. Terminal; never reciprocated.
	InteractionStatusRejected InteractionStatus = "REJECTED"
)

// InteractionAction is a swipe decision submitted by a user.
type InteractionAction string

const (
	// ActionLike expresses interest in the target user.
	ActionLike InteractionAction = "LIKE"
	// ActionPass declines the target user.
	ActionPass InteractionAction = "PASS"
)

// ParseInteractionAction validates a raw action string against the closed set
// of supported actions. Free-form input is rejected at the boundary.
func ParseInteractionAction(raw string) (InteractionAction, error) {
	switch InteractionAction(strings.ToUpper(strings.TrimSpace(raw))) {
	case ActionLike:
		return ActionLike, nil
	case ActionPass:
		return ActionPass, nil
	default:
		return "", NewInvalidActionError()
	}
}

// Interaction is one directed like-or-pass record from an initiator toward a
// receiver. The ordered pair (initiator_id, receiver_id) is unique: a user may
// act on another specific user exactly once. A mutual match is represented by
// a single row whose status was flipped from PENDING to ACCEPTED; the row keeps
// the original initiator so "who liked first" survives for display.
type Interaction struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	InitiatorID uint              `gorm:"not null;uniqueIndex:idx_interaction_pair" json:"initiator_id"`
	ReceiverID  uint              `gorm:"not null;uniqueIndex:idx_interaction_pair" json:"receiver_id"`
	Status      InteractionStatus `gorm:"type:varchar(20);not null;index:idx_interactions_status" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	Initiator User `gorm:"foreignKey:InitiatorID" json:"initiator,omitempty"`
	Receiver  User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (Interaction) TableName() string {
	return "interactions"
}

// CounterpartID returns the other side of the interaction relative to userID.
func (i *Interaction) CounterpartID(userID uint) uint {
	if i.InitiatorID == userID {
		return i.ReceiverID
	}
	return i.InitiatorID
}

// DecisionOutcome is the result of a successful swipe decision.
type DecisionOutcome struct {
	Matched     bool         `json:"matched"`
	Interaction *Interaction `json:"-"`
}

// MatchSummary is one confirmed mutual match as seen by a particular user.
type MatchSummary struct {
	MatchID     uint       `json:"match_id"`
	MatchedAt   time.Time  `json:"matched_at"`
	Counterpart PublicUser `json:"user"`
}
