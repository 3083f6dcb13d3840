package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
)

type authTestSetup struct {
	svc    AuthService
	users  *mockUserRepo
	tokens *mockTokenStore
	mail   *mockMailer
}

func newTestAuthService() *authTestSetup {
	users := newMockUserRepo()
	tokens := newMockTokenStore()
	mail := &mockMailer{}
	svc := NewAuthService(users, tokens, mail, AuthConfig{
		EmailDomain:       "@etown.edu",
		MinPasswordLength: 6,
		VerificationTTL:   24 * time.Hour,
		BaseURL:           "http://localhost:8080",
	}, testLogger())
	return &authTestSetup{svc: svc, users: users, tokens: tokens, mail: mail}
}

func (ts *authTestSetup) createVerifiedUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error = %v", err)
	}
	hashStr := string(hash)
	user := &models.User{
		Email:         email,
		PasswordHash:  &hashStr,
		EmailVerified: true,
	}
	if err := ts.users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return user
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unverified account and sends mail", func(t *testing.T) {
		ts := newTestAuthService()

		user, err := ts.svc.SignUp(ctx, SignUpRequest{
			Email:           "student@etown.edu",
			Password:        "hunter22",
			ConfirmPassword: "hunter22",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}

		if user.EmailVerified {
			t.Error("EmailVerified = true, want false")
		}
		if user.PasswordHash == nil {
			t.Fatal("PasswordHash is nil")
		}
		if *user.PasswordHash == "hunter22" {
			t.Error("password stored in plaintext")
		}
		if len(ts.mail.sent) != 1 || ts.mail.sent[0] != "student@etown.edu" {
			t.Errorf("mail sent to %v, want [student@etown.edu]", ts.mail.sent)
		}
		if len(ts.tokens.values) != 1 {
			t.Errorf("token count = %d, want 1", len(ts.tokens.values))
		}
	})

	t.Run("rejects non-institutional email", func(t *testing.T) {
		ts := newTestAuthService()

		_, err := ts.svc.SignUp(ctx, SignUpRequest{
			Email:           "student@gmail.com",
			Password:        "hunter22",
			ConfirmPassword: "hunter22",
		})
		apiErr, ok := err.(*apierrors.APIError)
		if !ok {
			t.Fatalf("error type = %T, want *APIError", err)
		}
		if !strings.Contains(apiErr.Message, "Elizabethtown College email") {
			t.Errorf("Message = %q, want Elizabethtown College email hint", apiErr.Message)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		ts := newTestAuthService()

		_, err := ts.svc.SignUp(ctx, SignUpRequest{
			Email:           "student@etown.edu",
			Password:        "abc",
			ConfirmPassword: "abc",
		})
		apiErr, ok := err.(*apierrors.APIError)
		if !ok {
			t.Fatalf("error type = %T, want *APIError", err)
		}
		if apiErr.Message != "Password must be at least 6 characters" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		ts := newTestAuthService()

		_, err := ts.svc.SignUp(ctx, SignUpRequest{
			Email:           "student@etown.edu",
			Password:        "hunter22",
			ConfirmPassword: "hunter23",
		})
		apiErr, ok := err.(*apierrors.APIError)
		if !ok {
			t.Fatalf("error type = %T, want *APIError", err)
		}
		if apiErr.Message != "Passwords do not match" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		ts := newTestAuthService()
		ts.createVerifiedUser(t, "student@etown.edu", "hunter22")

		_, err := ts.svc.SignUp(ctx, SignUpRequest{
			Email:           "Student@etown.edu",
			Password:        "hunter22",
			ConfirmPassword: "hunter22",
		})
		if err != apierrors.ErrEmailTaken {
			t.Errorf("error = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("mail failure does not fail sign-up", func(t *testing.T) {
		ts := newTestAuthService()
		ts.mail.err = context.DeadlineExceeded

		user, err := ts.svc.SignUp(ctx, SignUpRequest{
			Email:           "student@etown.edu",
			Password:        "hunter22",
			ConfirmPassword: "hunter22",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}
		if user == nil {
			t.Fatal("SignUp() returned nil user")
		}
	})
}

func TestAuthService_VerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies and consumes the token", func(t *testing.T) {
		ts := newTestAuthService()

		user, err := ts.svc.SignUp(ctx, SignUpRequest{
			Email:           "student@etown.edu",
			Password:        "hunter22",
			ConfirmPassword: "hunter22",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}

		var token string
		for k := range ts.tokens.values {
			token = strings.TrimPrefix(k, "verify:")
		}

		if err := ts.svc.VerifyEmail(ctx, token); err != nil {
			t.Fatalf("VerifyEmail() error = %v", err)
		}
		if !ts.users.users[user.ID].EmailVerified {
			t.Error("EmailVerified = false after verification")
		}

		// Second use of the same token must fail.
		if err := ts.svc.VerifyEmail(ctx, token); err != apierrors.ErrInvalidToken {
			t.Errorf("second VerifyEmail() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("rejects unknown token", func(t *testing.T) {
		ts := newTestAuthService()
		if err := ts.svc.VerifyEmail(ctx, "nope"); err != apierrors.ErrInvalidToken {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("rejects empty token", func(t *testing.T) {
		ts := newTestAuthService()
		if err := ts.svc.VerifyEmail(ctx, ""); err != apierrors.ErrInvalidToken {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("signs in a verified user", func(t *testing.T) {
		ts := newTestAuthService()
		created := ts.createVerifiedUser(t, "student@etown.edu", "hunter22")

		user, err := ts.svc.SignIn(ctx, "Student@etown.edu ", "hunter22")
		if err != nil {
			t.Fatalf("SignIn() error = %v", err)
		}
		if user.ID != created.ID {
			t.Errorf("ID = %v, want %v", user.ID, created.ID)
		}
		if user.LastLoginAt == nil {
			t.Error("LastLoginAt not updated")
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		ts := newTestAuthService()
		_, err := ts.svc.SignIn(ctx, "ghost@etown.edu", "hunter22")
		if err != apierrors.ErrUnknownAccount {
			t.Errorf("error = %v, want ErrUnknownAccount", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		ts := newTestAuthService()
		ts.createVerifiedUser(t, "student@etown.edu", "hunter22")

		_, err := ts.svc.SignIn(ctx, "student@etown.edu", "wrong")
		if err != apierrors.ErrWrongPassword {
			t.Errorf("error = %v, want ErrWrongPassword", err)
		}
	})

	t.Run("unverified account", func(t *testing.T) {
		ts := newTestAuthService()

		_, err := ts.svc.SignUp(ctx, SignUpRequest{
			Email:           "student@etown.edu",
			Password:        "hunter22",
			ConfirmPassword: "hunter22",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}

		_, err = ts.svc.SignIn(ctx, "student@etown.edu", "hunter22")
		if err != apierrors.ErrEmailNotVerified {
			t.Errorf("error = %v, want ErrEmailNotVerified", err)
		}
	})

	t.Run("oauth-only account has no password", func(t *testing.T) {
		ts := newTestAuthService()
		provider := "google"
		user := &models.User{
			Email:         "oauth@etown.edu",
			EmailVerified: true,
			OAuthProvider: &provider,
		}
		if err := ts.users.Create(ctx, user); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		_, err := ts.svc.SignIn(ctx, "oauth@etown.edu", "anything")
		if err != apierrors.ErrWrongPassword {
			t.Errorf("error = %v, want ErrWrongPassword", err)
		}
	})
}
