// Package payments wraps the Stripe billing integration.
package payments

import (
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// CheckoutParams describes a subscription checkout to create.
type CheckoutParams struct {
	UserID        uint
	CustomerEmail string
	PriceID       string
	SuccessURL    string
	CancelURL     string
}

// Gateway is the billing provider surface the subscription service depends on.
type Gateway interface {
	// CreateCheckoutSession starts a hosted checkout and returns its URL.
	CreateCheckoutSession(params CheckoutParams) (string, error)
	// VerifyWebhook authenticates a webhook payload against its signature
	// header and returns the parsed event.
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	webhookSecret string
}

// NewStripeGateway configures the Stripe client and returns a gateway.
func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{webhookSecret: webhookSecret}
}

// CreateCheckoutSession starts a hosted subscription checkout session.
func (g *StripeGateway) CreateCheckoutSession(params CheckoutParams) (string, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail:     stripe.String(params.CustomerEmail),
		ClientReferenceID: stripe.String(strconv.FormatUint(uint64(params.UserID), 10)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id": strconv.FormatUint(uint64(params.UserID), 10),
			},
		},
	}

	s, err := session.New(sessionParams)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return s.URL, nil
}

// VerifyWebhook authenticates the payload signature and parses the event.
func (g *StripeGateway) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
}
