package server

import (
	"kindred/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminStats handles GET /api/admin/stats
func (s *Server) AdminStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Stats(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// AdminListUsers handles GET /api/admin/users
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.adminService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// AdminBanUser handles POST /api/admin/users/:id/ban
func (s *Server) AdminBanUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.SetBanned(c.Context(), currentUserID(c), userID, true); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// AdminUnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) AdminUnbanUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.SetBanned(c.Context(), currentUserID(c), userID, false); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// AdminSetRole handles POST /api/admin/users/:id/role
func (s *Server) AdminSetRole(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.adminService.SetRole(c.Context(), currentUserID(c), userID, models.UserRole(req.Role)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
