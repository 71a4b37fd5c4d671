package server

import (
	"kindred/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Discover handles GET /api/discover
func (s *Server) Discover(c *fiber.Ctx) error {
	userID := currentUserID(c)

	filters := models.DiscoverFilters{
		MinAge:   c.QueryInt("min_age", 0),
		MaxAge:   c.QueryInt("max_age", 0),
		Gender:   c.Query("gender"),
		Location: c.Query("location"),
	}
	// Kill switch for feed filters; on unless the flag says otherwise.
	if !s.featureFlags.EnabledOrDefault("discover_filters", userID, true) {
		filters = models.DiscoverFilters{}
	}

	profiles, err := s.profileService.Discover(c.Context(), userID, filters)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"profiles": profiles})
}
