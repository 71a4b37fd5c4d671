package service

import (
	"context"
	"fmt"
	"strings"

	"kindred/internal/models"
	"kindred/internal/repository"
	"kindred/internal/storage"
)

// MaxPhotosPerUser caps how many photos a profile may carry.
const MaxPhotosPerUser = 6

var allowedPhotoTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// PhotoService manages profile photos stored in object storage.
type PhotoService struct {
	photoRepo repository.PhotoRepository
	store     storage.PhotoStore
}

// NewPhotoService returns a new PhotoService.
func NewPhotoService(photoRepo repository.PhotoRepository, store storage.PhotoStore) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		store:     store,
	}
}

// RequestUpload presigns an upload slot for a new photo. The client PUTs the
// image to the returned URL, then confirms with AddPhoto.
func (s *PhotoService) RequestUpload(ctx context.Context, userID uint, contentType string) (uploadURL, objectKey string, err error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if _, ok := allowedPhotoTypes[contentType]; !ok {
		return "", "", models.NewValidationError("Photo must be JPEG, PNG, or WebP")
	}

	photos, err := s.photoRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if len(photos) >= MaxPhotosPerUser {
		return "", "", models.NewValidationError("Photo limit reached")
	}

	return s.store.PresignUpload(ctx, userID, contentType)
}

// AddPhoto records an uploaded object as one of the user's photos.
func (s *PhotoService) AddPhoto(ctx context.Context, userID uint, objectKey string) (*models.Photo, error) {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return nil, models.NewValidationError("Object key is required")
	}
	// Keys are issued per user; a confirm for someone else's key is rejected.
	if !strings.HasPrefix(objectKey, photoKeyPrefix(userID)) {
		return nil, models.NewForbiddenError("Cannot register a photo you did not upload")
	}

	photo := &models.Photo{
		UserID:    userID,
		URL:       s.store.PublicURL(objectKey),
		ObjectKey: objectKey,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// ListPhotos returns the user's photos, newest first.
func (s *PhotoService) ListPhotos(ctx context.Context, userID uint) ([]models.Photo, error) {
	return s.photoRepo.ListByUser(ctx, userID)
}

// DeletePhoto removes one of the user's own photos from storage and the
// database.
func (s *PhotoService) DeletePhoto(ctx context.Context, userID, photoID uint) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return models.NewForbiddenError("Cannot delete another user's photo")
	}

	if err := s.store.Delete(ctx, photo.ObjectKey); err != nil {
		return models.NewInternalError(err)
	}
	return s.photoRepo.Delete(ctx, photoID)
}

func photoKeyPrefix(userID uint) string {
	return fmt.Sprintf("photos/%d/", userID)
}
