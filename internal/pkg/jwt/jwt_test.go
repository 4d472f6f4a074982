package jwt

import (
	"errors"
	"testing"
	"time"

	"county-workhub/internal/core/domain"
)

const (
	testSecret        = "unit-test-secret"
	testRefreshSecret = "unit-test-refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "maria@example.com", "Maria Lopez", domain.RoleSupervisor, testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "maria@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != domain.RoleSupervisor {
		t.Errorf("Role = %q, want %q", claims.Role, domain.RoleSupervisor)
	}
	if claims.Issuer != "county-workhub" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "a@example.com", "A", domain.RoleAdmin, testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ValidateAccessToken(token, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("wrong secret err = %v, want ErrTokenInvalid", err)
	}
	if _, err := ValidateAccessToken("garbage.token.value", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("garbage token err = %v, want ErrTokenInvalid", err)
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	// Negative expiry produces an already-expired token.
	token, err := GenerateAccessToken(1, "a@example.com", "A", domain.RoleWorker, testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired token err = %v, want ErrTokenExpired", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-123", testRefreshSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testRefreshSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.TokenID != "token-id-123" {
		t.Errorf("TokenID = %q", claims.TokenID)
	}

	if _, err := ValidateRefreshToken(token, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("wrong secret err = %v, want ErrTokenInvalid", err)
	}
	// A refresh token does not validate as an access token claim set with
	// a different secret.
	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("cross-validation err = %v, want ErrTokenInvalid", err)
	}
}

func TestGetExpiryTime(t *testing.T) {
	got := GetExpiryTime(7)
	want := time.Now().UTC().Add(7 * 24 * time.Hour)
	if diff := got.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("GetExpiryTime(7) = %v, want ~%v", got, want)
	}
}
