package service

import (
	"context"
	"fmt"
	"testing"

	"kindred/internal/models"
)

type photoRepoStub struct {
	createFn     func(context.Context, *models.Photo) error
	getByIDFn    func(context.Context, uint) (*models.Photo, error)
	listByUserFn func(context.Context, uint) ([]models.Photo, error)
	deleteFn     func(context.Context, uint) error
}

func (s *photoRepoStub) Create(ctx context.Context, photo *models.Photo) error {
	return s.createFn(ctx, photo)
}
func (s *photoRepoStub) GetByID(ctx context.Context, id uint) (*models.Photo, error) {
	return s.getByIDFn(ctx, id)
}
func (s *photoRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Photo, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *photoRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPhotoRepo() *photoRepoStub {
	return &photoRepoStub{
		createFn:     func(context.Context, *models.Photo) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Photo, error) { return &models.Photo{}, nil },
		listByUserFn: func(context.Context, uint) ([]models.Photo, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

type photoStoreStub struct {
	presignFn   func(context.Context, uint, string) (string, string, error)
	publicURLFn func(string) string
	deleteFn    func(context.Context, string) error
}

func (s *photoStoreStub) PresignUpload(ctx context.Context, userID uint, contentType string) (string, string, error) {
	return s.presignFn(ctx, userID, contentType)
}
func (s *photoStoreStub) PublicURL(key string) string {
	return s.publicURLFn(key)
}
func (s *photoStoreStub) Delete(ctx context.Context, key string) error {
	return s.deleteFn(ctx, key)
}

func noopPhotoStore() *photoStoreStub {
	return &photoStoreStub{
		presignFn: func(_ context.Context, userID uint, _ string) (string, string, error) {
			key := fmt.Sprintf("photos/%d/generated", userID)
			return "https://s3.example.com/upload", key, nil
		},
		publicURLFn: func(key string) string { return "https://cdn.example.com/" + key },
		deleteFn:    func(context.Context, string) error { return nil },
	}
}

func TestPhotoServiceRequestUploadBadContentType(t *testing.T) {
	svc := NewPhotoService(noopPhotoRepo(), noopPhotoStore())
	_, _, err := svc.RequestUpload(context.Background(), 1, "application/pdf")
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestPhotoServiceRequestUploadAtCap(t *testing.T) {
	repo := noopPhotoRepo()
	repo.listByUserFn = func(context.Context, uint) ([]models.Photo, error) {
		return make([]models.Photo, MaxPhotosPerUser), nil
	}

	svc := NewPhotoService(repo, noopPhotoStore())
	_, _, err := svc.RequestUpload(context.Background(), 1, "image/jpeg")
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestPhotoServiceRequestUploadPresigns(t *testing.T) {
	svc := NewPhotoService(noopPhotoRepo(), noopPhotoStore())
	url, key, err := svc.RequestUpload(context.Background(), 1, "IMAGE/JPEG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url == "" || key != "photos/1/generated" {
		t.Fatalf("unexpected presign result: %s, %s", url, key)
	}
}

func TestPhotoServiceAddPhotoForeignKeyRejected(t *testing.T) {
	svc := NewPhotoService(noopPhotoRepo(), noopPhotoStore())
	_, err := svc.AddPhoto(context.Background(), 1, "photos/2/stolen")
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestPhotoServiceAddPhotoOwnKey(t *testing.T) {
	repo := noopPhotoRepo()
	var created *models.Photo
	repo.createFn = func(_ context.Context, photo *models.Photo) error {
		created = photo
		return nil
	}

	svc := NewPhotoService(repo, noopPhotoStore())
	photo, err := svc.AddPhoto(context.Background(), 1, "photos/1/abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || photo.URL != "https://cdn.example.com/photos/1/abc" {
		t.Fatalf("unexpected photo: %#v", created)
	}
}

func TestPhotoServiceDeleteOtherUsersPhoto(t *testing.T) {
	repo := noopPhotoRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Photo, error) {
		return &models.Photo{ID: 5, UserID: 2, ObjectKey: "photos/2/abc"}, nil
	}
	store := noopPhotoStore()
	store.deleteFn = func(context.Context, string) error {
		t.Fatal("object must not be deleted on ownership failure")
		return nil
	}

	svc := NewPhotoService(repo, store)
	err := svc.DeletePhoto(context.Background(), 1, 5)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestPhotoServiceDeleteRemovesObjectAndRow(t *testing.T) {
	repo := noopPhotoRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Photo, error) {
		return &models.Photo{ID: 5, UserID: 1, ObjectKey: "photos/1/abc"}, nil
	}
	var deletedRow uint
	repo.deleteFn = func(_ context.Context, id uint) error {
		deletedRow = id
		return nil
	}
	store := noopPhotoStore()
	var deletedKey string
	store.deleteFn = func(_ context.Context, key string) error {
		deletedKey = key
		return nil
	}

	svc := NewPhotoService(repo, store)
	if err := svc.DeletePhoto(context.Background(), 1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedKey != "photos/1/abc" || deletedRow != 5 {
		t.Fatalf("expected object and row removed, got key=%q row=%d", deletedKey, deletedRow)
	}
}
