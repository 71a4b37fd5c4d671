package server

import (
	"errors"

	"kindred/internal/models"
	"kindred/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages/:userId
func (s *Server) SendMessage(c *fiber.Ctx) error {
	receiverID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.messageService.Send(c.Context(), currentUserID(c), receiverID, req.Content)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeForbidden {
			observability.MessagingDenied.Inc()
		}
		return models.RespondWithAppError(c, err)
	}

	observability.MessagesSent.Inc()
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetMessages handles GET /api/messages/:userId
func (s *Server) GetMessages(c *fiber.Ctx) error {
	counterpartID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	messages, err := s.messageService.History(c.Context(), currentUserID(c), counterpartID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// GetConversations handles GET /api/messages/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.messageService.Conversations(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": conversations})
}

// GetUnreadCount handles GET /api/messages/unread
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.messageService.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}
