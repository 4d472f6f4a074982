package services_test

import (
	"context"
	"errors"
	"testing"

	"county-workhub/internal/adapters/persistence/repositories"
	"county-workhub/internal/config"
	"county-workhub/internal/core/domain"
	"county-workhub/internal/core/services"

	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *services.AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return services.NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
}

func TestSignup(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, &services.SignupInput{
		FullName: "Nina Patel",
		Email:    "nina@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if resp.User.Role != domain.RoleApplicant {
		t.Errorf("new account role = %q, want %q", resp.User.Role, domain.RoleApplicant)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}

	// The token must carry the user's identity and validate against the
	// signing secret.
	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, resp.User.ID)
	}
	if claims.Email != "nina@example.com" {
		t.Errorf("claims.Email = %q", claims.Email)
	}

	// Duplicate email is rejected.
	_, err = svc.Signup(ctx, &services.SignupInput{
		FullName: "Nina Again",
		Email:    "nina@example.com",
		Password: "otherpass1",
	})
	if !errors.Is(err, services.ErrEmailAlreadyUsed) {
		t.Errorf("duplicate signup err = %v, want ErrEmailAlreadyUsed", err)
	}
}

func TestLogin(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &services.SignupInput{
		FullName: "Omar Reyes",
		Email:    "omar@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	resp, err := svc.Login(ctx, &services.LoginInput{
		Email:    "omar@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.User.Email != "omar@example.com" {
		t.Errorf("user email = %q", resp.User.Email)
	}

	_, err = svc.Login(ctx, &services.LoginInput{
		Email:    "omar@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(ctx, &services.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	if !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, &services.SignupInput{
		FullName: "Priya Shah",
		Email:    "priya@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, signup.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.RefreshToken == signup.RefreshToken {
		t.Error("refresh should rotate to a new token")
	}

	// The old token was revoked by the rotation and cannot be replayed.
	_, err = svc.RefreshToken(ctx, signup.RefreshToken)
	if !errors.Is(err, services.ErrTokenRevoked) {
		t.Errorf("replayed token err = %v, want ErrTokenRevoked", err)
	}

	// The rotated token still works.
	if _, err := svc.RefreshToken(ctx, refreshed.RefreshToken); err != nil {
		t.Errorf("rotated token refresh: %v", err)
	}

	_, err = svc.RefreshToken(ctx, "not-a-jwt")
	if !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("garbage token err = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, &services.SignupInput{
		FullName: "Tom Hale",
		Email:    "tom@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if err := svc.Logout(ctx, resp.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.RefreshToken(ctx, resp.RefreshToken); !errors.Is(err, services.ErrTokenRevoked) {
		t.Errorf("refresh after logout err = %v, want ErrTokenRevoked", err)
	}
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	first, err := svc.Signup(ctx, &services.SignupInput{
		FullName: "Ada Quinn",
		Email:    "ada@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	second, err := svc.Login(ctx, &services.LoginInput{
		Email:    "ada@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.LogoutAll(ctx, first.User.ID); err != nil {
		t.Fatalf("LogoutAll: %v", err)
	}
	for i, tok := range []string{first.RefreshToken, second.RefreshToken} {
		if _, err := svc.RefreshToken(ctx, tok); !errors.Is(err, services.ErrTokenRevoked) {
			t.Errorf("session %d refresh err = %v, want ErrTokenRevoked", i, err)
		}
	}
}
