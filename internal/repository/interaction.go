// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"kindred/internal/models"

	"gorm.io/gorm"
)

// InteractionRepository is the ledger of directed like/pass records. It is the
// sole owner of match state: rows are inserted once, flipped PENDING->ACCEPTED
// at most once, and never deleted.
type InteractionRepository interface {
	// Find returns the row for the ordered pair, or (nil, nil) when none exists.
	Find(ctx context.Context, initiatorID, receiverID uint) (*models.Interaction, error)
	// FindPending returns the PENDING row for the ordered pair, or (nil, nil).
	FindPending(ctx context.Context, initiatorID, receiverID uint) (*models.Interaction, error)
	// Insert persists a new row. The ordered-pair uniqueness constraint makes
	// this the serialization point for concurrent swipes: a constraint
	// violation surfaces as a DUPLICATE_INTERACTION AppError.
	Insert(ctx context.Context, interaction *models.Interaction) error
	// UpdateStatus flips a row's status in place.
	UpdateStatus(ctx context.Context, id uint, status models.InteractionStatus) error
	// ListAcceptedFor returns ACCEPTED rows where the user appears on either
	// side, ordered created_at DESC with id ASC as the deterministic tie-break.
	ListAcceptedFor(ctx context.Context, userID uint) ([]models.Interaction, error)
	// FindAcceptedBetween returns the ACCEPTED row between two users in either
	// direction, or (nil, nil) when the pair is not matched.
	FindAcceptedBetween(ctx context.Context, userA, userB uint) (*models.Interaction, error)
	// ListReceiverIDsFor returns every receiver the user has already acted on.
	ListReceiverIDsFor(ctx context.Context, initiatorID uint) ([]uint, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Find(ctx context.Context, initiatorID, receiverID uint) (*models.Interaction, error) {
	var interaction models.Interaction
	err := r.db.WithContext(ctx).
		Where("initiator_id = ? AND receiver_id = ?", initiatorID, receiverID).
		First(&interaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &interaction, nil
}

func (r *interactionRepository) FindPending(ctx context.Context, initiatorID, receiverID uint) (*models.Interaction, error) {
	var interaction models.Interaction
	err := r.db.WithContext(ctx).
		Where("initiator_id = ? AND receiver_id = ? AND status = ?",
			initiatorID, receiverID, models.InteractionStatusPending).
		First(&interaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &interaction, nil
}

func (r *interactionRepository) Insert(ctx context.Context, interaction *models.Interaction) error {
	if err := r.db.WithContext(ctx).Create(interaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewDuplicateInteractionError()
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) UpdateStatus(ctx context.Context, id uint, status models.InteractionStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) ListAcceptedFor(ctx context.Context, userID uint) ([]models.Interaction, error) {
	var interactions []models.Interaction
	if err := r.db.WithContext(ctx).
		Where("status = ? AND (initiator_id = ? OR receiver_id = ?)",
			models.InteractionStatusAccepted, userID, userID).
		Order("created_at DESC, id ASC").
		Find(&interactions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return interactions, nil
}

func (r *interactionRepository) FindAcceptedBetween(ctx context.Context, userA, userB uint) (*models.Interaction, error) {
	var interaction models.Interaction
	err := r.db.WithContext(ctx).
		Where("status = ? AND ((initiator_id = ? AND receiver_id = ?) OR (initiator_id = ? AND receiver_id = ?))",
			models.InteractionStatusAccepted, userA, userB, userB, userA).
		First(&interaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &interaction, nil
}

func (r *interactionRepository) ListReceiverIDsFor(ctx context.Context, initiatorID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("initiator_id = ?", initiatorID).
		Pluck("receiver_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
