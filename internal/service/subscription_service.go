package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"kindred/internal/cache"
	"kindred/internal/models"
	"kindred/internal/observability"
	"kindred/internal/payments"
	"kindred/internal/repository"

	"github.com/stripe/stripe-go/v76"
)

// SubscriptionService manages billing state and the Stripe integration.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	gateway          payments.Gateway
	priceID          string
	appURL           string
}

// NewSubscriptionService returns a new SubscriptionService.
func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	gateway payments.Gateway,
	priceID, appURL string,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		gateway:          gateway,
		priceID:          priceID,
		appURL:           appURL,
	}
}

// Status returns the user's subscription, creating the FREE/INACTIVE record
// lazily the first time billing state is read. Reads are cached; every write
// path invalidates the user's entry.
func (s *SubscriptionService) Status(ctx context.Context, userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := cache.CacheAside(ctx, cache.SubscriptionKey(userID), &sub, cache.SubscriptionTTL, func() error {
		fetched, fetchErr := s.ensureSubscription(ctx, userID)
		if fetchErr != nil {
			return fetchErr
		}
		sub = *fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ensureSubscription loads the user's subscription row straight from the
// database, creating the default record if none exists. Webhook handlers go
// through here so they never mutate a cache-derived copy.
func (s *SubscriptionService) ensureSubscription(ctx context.Context, userID uint) (*models.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		return sub, nil
	}

	sub = &models.Subscription{
		UserID: userID,
		Plan:   models.PlanFree,
		Status: models.SubscriptionStatusInactive,
	}
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Checkout starts a hosted checkout for the premium plan and returns the URL
// to redirect the user to.
func (s *SubscriptionService) Checkout(ctx context.Context, userID uint) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	sub, err := s.Status(ctx, userID)
	if err != nil {
		return "", err
	}
	if sub.IsPremiumActive(time.Now()) {
		return "", models.NewValidationError("Already subscribed to premium")
	}

	url, err := s.gateway.CreateCheckoutSession(payments.CheckoutParams{
		UserID:        userID,
		CustomerEmail: user.Email,
		PriceID:       s.priceID,
		SuccessURL:    s.appURL + "/subscription?status=success",
		CancelURL:     s.appURL + "/subscription?status=canceled",
	})
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return url, nil
}

// HandleWebhook verifies and applies a Stripe webhook event. Unknown event
// types are acknowledged without action so Stripe does not retry them.
func (s *SubscriptionService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.gateway.VerifyWebhook(payload, sigHeader)
	if err != nil {
		observability.WebhookEvents.WithLabelValues("unknown", "signature_rejected").Inc()
		return models.NewValidationError("Invalid webhook signature")
	}

	var handleErr error
	switch event.Type {
	case "checkout.session.completed":
		handleErr = s.applyCheckoutCompleted(ctx, event)
	case "customer.subscription.updated":
		handleErr = s.applySubscriptionUpdated(ctx, event)
	case "customer.subscription.deleted":
		handleErr = s.applySubscriptionDeleted(ctx, event)
	default:
		observability.WebhookEvents.WithLabelValues(string(event.Type), "ignored").Inc()
		return nil
	}

	result := "applied"
	if handleErr != nil {
		result = "failed"
	}
	observability.WebhookEvents.WithLabelValues(string(event.Type), result).Inc()
	return handleErr
}

func (s *SubscriptionService) applyCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return models.NewInternalError(fmt.Errorf("malformed checkout session payload: %w", err))
	}

	userID, err := strconv.ParseUint(session.ClientReferenceID, 10, 32)
	if err != nil {
		return models.NewInternalError(fmt.Errorf("checkout session missing user reference: %w", err))
	}

	sub, err := s.ensureSubscription(ctx, uint(userID))
	if err != nil {
		return err
	}

	sub.Plan = models.PlanPremium
	sub.Status = models.SubscriptionStatusActive
	sub.StripePriceID = s.priceID
	if session.Customer != nil {
		sub.StripeCustomerID = session.Customer.ID
	}
	if session.Subscription != nil {
		sub.StripeSubscriptionID = session.Subscription.ID
	}

	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		return err
	}
	cache.InvalidateSubscription(ctx, sub.UserID)
	return nil
}

func (s *SubscriptionService) applySubscriptionUpdated(ctx context.Context, event stripe.Event) error {
	var stripeSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return models.NewInternalError(fmt.Errorf("malformed subscription payload: %w", err))
	}

	sub, err := s.subscriptionRepo.GetByStripeSubscriptionID(ctx, stripeSub.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		// Event for a subscription we never recorded; nothing to update.
		return nil
	}

	if stripeSub.Status == stripe.SubscriptionStatusActive {
		sub.Plan = models.PlanPremium
		sub.Status = models.SubscriptionStatusActive
	} else {
		sub.Status = models.SubscriptionStatusInactive
	}
	if stripeSub.CurrentPeriodEnd > 0 {
		periodEnd := time.Unix(stripeSub.CurrentPeriodEnd, 0)
		sub.CurrentPeriodEnd = &periodEnd
	}

	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		return err
	}
	cache.InvalidateSubscription(ctx, sub.UserID)
	return nil
}

func (s *SubscriptionService) applySubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var stripeSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return models.NewInternalError(fmt.Errorf("malformed subscription payload: %w", err))
	}

	sub, err := s.subscriptionRepo.GetByStripeSubscriptionID(ctx, stripeSub.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil
	}

	sub.Plan = models.PlanFree
	sub.Status = models.SubscriptionStatusCanceled
	sub.StripeSubscriptionID = ""
	sub.CurrentPeriodEnd = nil

	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		return err
	}
	cache.InvalidateSubscription(ctx, sub.UserID)
	return nil
}
