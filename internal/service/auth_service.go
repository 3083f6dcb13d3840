// Package service provides business logic implementations.
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/etown-exchange/api/internal/mailer"
	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/repository"
)

// TokenStore holds short-lived email verification tokens.
// *database.Redis satisfies this interface.
type TokenStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

// AuthService defines the email/password authentication interface.
type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SignUpRequest is the request for creating an account.
type SignUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// AuthConfig holds the policy knobs for account creation.
type AuthConfig struct {
	// EmailDomain is the institutional suffix accepted at sign-up.
	EmailDomain string
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength int
	// VerificationTTL bounds how long a verification link stays valid.
	VerificationTTL time.Duration
	// BaseURL is used to build verification links.
	BaseURL string
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenStore
	mail     mailer.Mailer
	cfg      AuthConfig
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenStore,
	mail mailer.Mailer,
	cfg AuthConfig,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		mail:     mail,
		cfg:      cfg,
		logger:   logger,
	}
}

const verifyTokenPrefix = "verify:"

// SignUp validates the request, creates an unverified account, and sends a
// verification email. Mail delivery is best-effort; a failure is logged and
// does not fail the sign-up.
func (s *authService) SignUp(ctx context.Context, req SignUpRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !strings.HasSuffix(email, s.cfg.EmailDomain) {
		return nil, apierrors.NewValidationError("email", "Please use your Elizabethtown College email")
	}
	if len(req.Password) < s.cfg.MinPasswordLength {
		return nil, apierrors.NewValidationError("password",
			fmt.Sprintf("Password must be at least %d characters", s.cfg.MinPasswordLength))
	}
	if req.Password != req.ConfirmPassword {
		return nil, apierrors.NewValidationError("confirm_password", "Passwords do not match")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	user := &models.User{
		Email:        email,
		PasswordHash: &hashStr,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Set(ctx, verifyTokenPrefix+token, user.ID.String(), s.cfg.VerificationTTL); err != nil {
		return nil, err
	}

	verifyURL := fmt.Sprintf("%s/v1/auth/verify?token=%s", s.cfg.BaseURL, token)
	if err := s.mail.Send(user.Email, "Verify your Etown Exchange account", mailer.VerificationBody(verifyURL)); err != nil {
		s.logger.Error("failed to send verification email",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return user, nil
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apierrors.ErrInvalidToken
	}

	userIDStr, err := s.tokens.Get(ctx, verifyTokenPrefix+token)
	if err != nil || userIDStr == "" {
		return apierrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return apierrors.ErrInvalidToken
	}

	if err := s.userRepo.SetEmailVerified(ctx, userID); err != nil {
		return err
	}

	// Token is single-use; if the delete fails it just expires on its own.
	if err := s.tokens.Delete(ctx, verifyTokenPrefix+token); err != nil {
		s.logger.Warn("failed to delete verification token", slog.String("error", err.Error()))
	}

	return nil
}

// SignIn checks credentials and returns the user. Errors are specific per
// condition so the login form can show exact messages.
func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.ErrUnknownAccount
	}
	if user.PasswordHash == nil {
		// OAuth-only account
		return nil, apierrors.ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, apierrors.ErrWrongPassword
	}
	if !user.EmailVerified {
		return nil, apierrors.ErrEmailNotVerified
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last login", slog.String("user_id", user.ID.String()))
	}

	return user, nil
}

// GetUserByID loads the user behind a session.
func (s *authService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.ErrUnauthorized
	}
	return user, nil
}

// generateToken returns a URL-safe random token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
