// Package handler provides HTTP handlers for the marketplace API.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"

	"github.com/etown-exchange/api/internal/middleware"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/pkg/response"
	"github.com/etown-exchange/api/internal/pkg/ulid"
	"github.com/etown-exchange/api/internal/service"
)

// OAuthStateCookie carries the CSRF state across the OAuth round trip.
const OAuthStateCookie = "exchange_oauth_state"

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService  service.AuthService
	oauthService service.OAuthService
	store        sessions.Store
	validate     *validator.Validate
	sessionTTL   time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	authService service.AuthService,
	oauthService service.OAuthService,
	store sessions.Store,
	sessionTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
		store:        store,
		validate:     validator.New(),
		sessionTTL:   sessionTTL,
	}
}

// Routes returns a chi router with auth routes. The session middleware is
// applied per-route; only /me needs it.
func (h *AuthHandler) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.SignUp)
	r.Get("/verify", h.VerifyEmail)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/google", h.GoogleStart)
	r.Get("/google/callback", h.GoogleCallback)
	r.With(requireAuth).Get("/me", h.Me)

	return r
}

// SignUp handles POST /v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("email", "A valid email and password are required"))
		return
	}

	user, err := h.authService.SignUp(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}

	middleware.CountSignup()
	response.Created(w, map[string]any{
		"user":    user,
		"message": "Check your inbox for a verification link before signing in.",
	})
}

// VerifyEmail handles GET /v1/auth/verify?token=...
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	if err := h.authService.VerifyEmail(r.Context(), token); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Email verified. You can sign in now."})
}

// LoginRequest is the HTTP request body for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("email", "Email and password are required"))
		return
	}

	user, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.createSession(w, r, user.ID.String()); err != nil {
		response.Error(w, apierrors.ErrInternal)
		return
	}

	response.OK(w, user)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionCookieName)
	if err == nil {
		session.Options.MaxAge = -1
		_ = session.Save(r, w)
	}
	response.OK(w, map[string]string{"message": "Signed out"})
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}
	response.OK(w, user)
}

// GoogleStart handles GET /v1/auth/google
func (h *AuthHandler) GoogleStart(w http.ResponseWriter, r *http.Request) {
	if h.oauthService == nil || !h.oauthService.Enabled() {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Google sign-in is not configured"))
		return
	}

	state := ulid.New()

	http.SetCookie(w, &http.Cookie{
		Name:     OAuthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	url, err := h.oauthService.GetAuthURL(state)
	if err != nil {
		response.Error(w, apierrors.ErrInternal)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// GoogleCallback handles GET /v1/auth/google/callback
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.oauthService == nil || !h.oauthService.Enabled() {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Google sign-in is not configured"))
		return
	}

	stateCookie, err := r.Cookie(OAuthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("OAuth state mismatch"))
		return
	}

	// Clear the state cookie; it is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:     OAuthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Missing authorization code"))
		return
	}

	user, err := h.oauthService.HandleCallback(r.Context(), code)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.createSession(w, r, user.ID.String()); err != nil {
		response.Error(w, apierrors.ErrInternal)
		return
	}

	response.OK(w, user)
}

func (h *AuthHandler) createSession(w http.ResponseWriter, r *http.Request, userID string) error {
	// New reports a decode error when the request carries a stale or
	// corrupted session cookie, but still returns a usable fresh session.
	// A leftover bad cookie must not block sign-in.
	session, err := h.store.New(r, middleware.SessionCookieName)
	if session == nil {
		return err
	}
	session.Values["user_id"] = userID
	session.Options.MaxAge = int(h.sessionTTL.Seconds())
	session.Options.HttpOnly = true
	session.Options.SameSite = http.SameSiteLaxMode
	session.Options.Path = "/"
	return session.Save(r, w)
}
