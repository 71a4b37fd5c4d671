package server

import (
	"kindred/internal/models"
	"kindred/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// SubmitDecision handles POST /api/matches
func (s *Server) SubmitDecision(c *fiber.Ctx) error {
	var req struct {
		TargetUserID uint   `json:"target_user_id"`
		Action       string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TargetUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_user_id is required"))
	}

	action, err := models.ParseInteractionAction(req.Action)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	userID := currentUserID(c)

	// Opt-in enforcement rolled out via feature flag.
	if s.featureFlags.Enabled("require_verified_email", userID) {
		user, userErr := s.userRepo.GetByID(c.Context(), userID)
		if userErr != nil {
			return models.RespondWithAppError(c, userErr)
		}
		if !user.EmailVerified {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Verify your email to start matching"))
		}
	}

	outcome, err := s.matchService.Decide(c.Context(), userID, req.TargetUserID, action)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	observability.RecordSwipe(string(action), outcome.Matched)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"matched": outcome.Matched,
	})
}

// GetMatches handles GET /api/matches
func (s *Server) GetMatches(c *fiber.Ctx) error {
	matches, err := s.matchService.MatchesFor(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"matches": matches})
}
