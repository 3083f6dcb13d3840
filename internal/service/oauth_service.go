package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/repository"
)

// OAuthUserInfo contains user information fetched from the OAuth provider.
type OAuthUserInfo struct {
	ID    string
	Email string
	Name  string
}

// OAuthService implements campus Google sign-in. Only accounts on the
// institutional email domain are accepted; those arrive pre-verified.
type OAuthService interface {
	// Enabled reports whether OAuth credentials are configured.
	Enabled() bool

	// GetAuthURL returns the Google authorization URL.
	GetAuthURL(state string) (string, error)

	// HandleCallback exchanges the code and returns the signed-in user.
	HandleCallback(ctx context.Context, code string) (*models.User, error)
}

// OAuthConfig holds Google OAuth settings plus the domain gate.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	EmailDomain  string
}

type oauthService struct {
	config      *oauth2.Config
	userRepo    repository.UserRepository
	emailDomain string
	httpClient  HTTPClient
}

// HTTPClient interface for making HTTP requests (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewOAuthService creates a new OAuth service with the given configuration.
func NewOAuthService(cfg OAuthConfig, userRepo repository.UserRepository) OAuthService {
	var config *oauth2.Config
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		config = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  cfg.CallbackURL + "/v1/auth/google/callback",
			Scopes:       []string{"email", "profile"},
		}
	}

	return &oauthService{
		config:      config,
		userRepo:    userRepo,
		emailDomain: cfg.EmailDomain,
		httpClient:  http.DefaultClient,
	}
}

func (s *oauthService) Enabled() bool {
	return s.config != nil
}

func (s *oauthService) GetAuthURL(state string) (string, error) {
	if s.config == nil {
		return "", fmt.Errorf("google oauth is not configured")
	}
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, code string) (*models.User, error) {
	if s.config == nil {
		return nil, fmt.Errorf("google oauth is not configured")
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	if !strings.HasSuffix(email, s.emailDomain) {
		return nil, apierrors.NewValidationError("email", "Please use your Elizabethtown College email")
	}

	return s.findOrCreateUser(ctx, email)
}

func (s *oauthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google API returned status %d", resp.StatusCode)
	}

	var data struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode Google user response: %w", err)
	}

	return &OAuthUserInfo{ID: data.ID, Email: data.Email, Name: data.Name}, nil
}

func (s *oauthService) findOrCreateUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if !user.EmailVerified {
			// Google vouched for the address, no mail round-trip needed.
			if err := s.userRepo.SetEmailVerified(ctx, user.ID); err != nil {
				return nil, err
			}
			user.EmailVerified = true
		}
		_ = s.userRepo.UpdateLastLogin(ctx, user.ID)
		return user, nil
	}

	provider := "google"
	user = &models.User{
		Email:         email,
		EmailVerified: true,
		OAuthProvider: &provider,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
