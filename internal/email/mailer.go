// Package email delivers transactional email for account flows.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"kindred/internal/middleware"

	"github.com/resend/resend-go/v2"
)

// Mailer sends account lifecycle emails.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, firstName, token string) error
	SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error
}

// ResendMailer sends email through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	appURL string
}

// NewResendMailer returns a Mailer backed by Resend.
func NewResendMailer(apiKey, from, appURL string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		appURL: appURL,
	}
}

// SendVerificationEmail sends the email-ownership confirmation link.
func (m *ResendMailer) SendVerificationEmail(ctx context.Context, to, firstName, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.appURL, token)
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Verify your Kindred email",
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>Welcome to Kindred. Confirm your email to start matching:</p><p><a href=%q>Verify email</a></p><p>This link expires in 24 hours.</p>",
			firstName, link,
		),
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// SendPasswordResetEmail sends the password reset link.
func (m *ResendMailer) SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.appURL, token)
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Reset your Kindred password",
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>We received a request to reset your password:</p><p><a href=%q>Reset password</a></p><p>If you didn't request this, you can ignore this email. The link expires in 1 hour.</p>",
			firstName, link,
		),
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// LogMailer logs emails instead of sending them. Used in development when no
// Resend API key is configured, and in tests.
type LogMailer struct{}

// SendVerificationEmail logs the verification token.
func (LogMailer) SendVerificationEmail(ctx context.Context, to, firstName, token string) error {
	middleware.Logger.InfoContext(ctx, "verification email (not sent)",
		slog.String("to", to),
		slog.String("token", token),
	)
	return nil
}

// SendPasswordResetEmail logs the reset token.
func (LogMailer) SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error {
	middleware.Logger.InfoContext(ctx, "password reset email (not sent)",
		slog.String("to", to),
		slog.String("token", token),
	)
	return nil
}
