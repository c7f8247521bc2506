package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-for-unit-tests"

func signToken(t *testing.T, secret, issuer string, expiresIn time.Duration) string {
	t.Helper()

	claims := Claims{
		UserID: 42,
		Email:  "admin@example.edu",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestValidateToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{Secret: testSecret})

	signed := signToken(t, testSecret, "", time.Hour)

	claims, err := manager.ValidateToken(signed)
	if err != nil {
		t.Fatalf("expected valid token to pass, got %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "admin@example.edu" {
		t.Errorf("Email = %q, want admin@example.edu", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(JWTConfig{Secret: testSecret})

	signed := signToken(t, "some-other-secret", "", time.Hour)

	if _, err := manager.ValidateToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	manager := NewJWTManager(JWTConfig{Secret: testSecret})

	signed := signToken(t, testSecret, "", -time.Hour)

	if _, err := manager.ValidateToken(signed); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenIssuer(t *testing.T) {
	manager := NewJWTManager(JWTConfig{Secret: testSecret, Issuer: "identity-service"})

	good := signToken(t, testSecret, "identity-service", time.Hour)
	if _, err := manager.ValidateToken(good); err != nil {
		t.Errorf("expected matching issuer to pass, got %v", err)
	}

	bad := signToken(t, testSecret, "someone-else", time.Hour)
	if _, err := manager.ValidateToken(bad); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	manager := NewJWTManager(JWTConfig{Secret: testSecret})

	if _, err := manager.ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
