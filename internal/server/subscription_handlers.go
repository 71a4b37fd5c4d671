package server

import (
	"kindred/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SubscriptionStatus handles GET /api/subscription/status
func (s *Server) SubscriptionStatus(c *fiber.Ctx) error {
	sub, err := s.subscriptionService.Status(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(sub)
}

// SubscriptionCheckout handles POST /api/subscription/checkout
func (s *Server) SubscriptionCheckout(c *fiber.Ctx) error {
	url, err := s.subscriptionService.Checkout(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"checkout_url": url})
}

// SubscriptionWebhook handles POST /api/subscription/webhook.
// The endpoint is unauthenticated; the Stripe-Signature header is the
// credential.
func (s *Server) SubscriptionWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	sigHeader := c.Get("Stripe-Signature")

	if err := s.subscriptionService.HandleWebhook(c.Context(), payload, sigHeader); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"received": true})
}
