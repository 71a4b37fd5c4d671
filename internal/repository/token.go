package repository

import (
	"context"
	"errors"

	"kindred/internal/models"

	"gorm.io/gorm"
)

// TokenRepository defines the interface for verification-token operations
type TokenRepository interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	// GetByToken returns (nil, nil) when the token string is unknown.
	GetByToken(ctx context.Context, token string, purpose models.TokenPurpose) (*models.VerificationToken, error)
	Delete(ctx context.Context, id uint) error
	// DeleteForUser removes all outstanding tokens of a purpose for a user,
	// invalidating previously issued links when a new one is requested.
	DeleteForUser(ctx context.Context, userID uint, purpose models.TokenPurpose) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new verification-token repository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.VerificationToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tokenRepository) GetByToken(ctx context.Context, token string, purpose models.TokenPurpose) (*models.VerificationToken, error) {
	var vt models.VerificationToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND purpose = ?", token, purpose).
		First(&vt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &vt, nil
}

func (r *tokenRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.VerificationToken{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tokenRepository) DeleteForUser(ctx context.Context, userID uint, purpose models.TokenPurpose) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Delete(&models.VerificationToken{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
