package service

import (
	"context"
	"strings"
	"time"

	"kindred/internal/email"
	"kindred/internal/models"
	"kindred/internal/repository"
	"kindred/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = time.Hour
)

// AuthService handles registration, credentials, and the emailed token flows.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	mailer    email.Mailer
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, mailer email.Mailer) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
	}
}

// Signup registers a new account and emails a verification link.
func (s *AuthService) Signup(ctx context.Context, emailAddr, password, firstName, lastName string) (*models.User, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if err := validation.ValidateEmail(emailAddr); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName(firstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:     emailAddr,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Role:      models.UserRoleMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueVerification(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login validates credentials and returns the account.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if user.IsBanned {
		return nil, models.NewForbiddenError("Account is banned")
	}
	return user, nil
}

// VerifyEmail consumes an emailed verification token and marks the account
// verified. Tokens are single use.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	vt, err := s.tokenRepo.GetByToken(ctx, token, models.TokenPurposeVerifyEmail)
	if err != nil {
		return err
	}
	if vt == nil || vt.Expired(time.Now()) {
		return models.NewValidationError("Invalid or expired verification token")
	}

	user, err := s.userRepo.GetByID(ctx, vt.UserID)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.tokenRepo.Delete(ctx, vt.ID)
}

// ResendVerification issues a fresh verification link, invalidating any
// outstanding one.
func (s *AuthService) ResendVerification(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return models.NewValidationError("Email is already verified")
	}
	return s.issueVerification(ctx, user)
}

// RequestPasswordReset emails a reset link when the address is registered.
// Unknown addresses succeed silently so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if err := s.tokenRepo.DeleteForUser(ctx, user.ID, models.TokenPurposeResetPassword); err != nil {
		return err
	}
	vt := &models.VerificationToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Purpose:   models.TokenPurposeResetPassword,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, vt); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.FirstName, vt.Token); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	vt, err := s.tokenRepo.GetByToken(ctx, token, models.TokenPurposeResetPassword)
	if err != nil {
		return err
	}
	if vt == nil || vt.Expired(time.Now()) {
		return models.NewValidationError("Invalid or expired reset token")
	}

	user, err := s.userRepo.GetByID(ctx, vt.UserID)
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.tokenRepo.Delete(ctx, vt.ID)
}

func (s *AuthService) issueVerification(ctx context.Context, user *models.User) error {
	if err := s.tokenRepo.DeleteForUser(ctx, user.ID, models.TokenPurposeVerifyEmail); err != nil {
		return err
	}
	vt := &models.VerificationToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Purpose:   models.TokenPurposeVerifyEmail,
		ExpiresAt: time.Now().Add(verifyTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, vt); err != nil {
		return err
	}
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.FirstName, vt.Token); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
