package server

import (
	"kindred/internal/models"
	"kindred/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateProfile handles POST /api/profile
func (s *Server) CreateProfile(c *fiber.Ctx) error {
	var req struct {
		Bio      string `json:"bio"`
		Age      int    `json:"age"`
		Gender   string `json:"gender"`
		Location string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.CreateProfile(c.Context(), currentUserID(c), req.Bio, req.Age, req.Gender, req.Location)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// GetMyProfile handles GET /api/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Bio      *string `json:"bio"`
		Age      *int    `json:"age"`
		Gender   *string `json:"gender"`
		Location *string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), currentUserID(c), service.ProfileUpdate{
		Bio:      req.Bio,
		Age:      req.Age,
		Gender:   req.Gender,
		Location: req.Location,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}
