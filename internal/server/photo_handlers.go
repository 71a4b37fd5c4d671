package server

import (
	"kindred/internal/models"

	"github.com/gofiber/fiber/v2"
)

// requirePhotoService rejects photo requests when object storage is not
// configured for this deployment.
func (s *Server) requirePhotoService(c *fiber.Ctx) error {
	if s.photoService == nil {
		_ = models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Photo storage is not configured"))
		return errResponseWritten
	}
	return nil
}

// RequestPhotoUpload handles POST /api/photos/upload-url
func (s *Server) RequestPhotoUpload(c *fiber.Ctx) error {
	if err := s.requirePhotoService(c); err != nil {
		return nil
	}

	var req struct {
		ContentType string `json:"content_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	uploadURL, objectKey, err := s.photoService.RequestUpload(c.Context(), currentUserID(c), req.ContentType)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"upload_url": uploadURL,
		"object_key": objectKey,
	})
}

// AddPhoto handles POST /api/photos
func (s *Server) AddPhoto(c *fiber.Ctx) error {
	if err := s.requirePhotoService(c); err != nil {
		return nil
	}

	var req struct {
		ObjectKey string `json:"object_key"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	photo, err := s.photoService.AddPhoto(c.Context(), currentUserID(c), req.ObjectKey)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

// GetMyPhotos handles GET /api/photos
func (s *Server) GetMyPhotos(c *fiber.Ctx) error {
	if err := s.requirePhotoService(c); err != nil {
		return nil
	}

	photos, err := s.photoService.ListPhotos(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"photos": photos})
}

// DeletePhoto handles DELETE /api/photos/:id
func (s *Server) DeletePhoto(c *fiber.Ctx) error {
	if err := s.requirePhotoService(c); err != nil {
		return nil
	}

	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.photoService.DeletePhoto(c.Context(), currentUserID(c), photoID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
