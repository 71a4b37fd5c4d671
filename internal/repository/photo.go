package repository

import (
	"context"
	"errors"

	"kindred/internal/models"

	"gorm.io/gorm"
)

// PhotoRepository defines the interface for photo data operations
type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id uint) (*models.Photo, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Photo, error)
	Delete(ctx context.Context, id uint) error
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *models.Photo) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *photoRepository) GetByID(ctx context.Context, id uint) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.WithContext(ctx).First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Photo", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &photo, nil
}

func (r *photoRepository) ListByUser(ctx context.Context, userID uint) ([]models.Photo, error) {
	var photos []models.Photo
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&photos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return photos, nil
}

func (r *photoRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Photo{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
