package crypto

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careerai/careerai-go/internal/model"
)

const (
	testAccessSecret  = "test-access-secret-0123456789abcdef"
	testRefreshSecret = "test-refresh-secret-0123456789abcdef"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager(testAccessSecret, testRefreshSecret, time.Hour, 7*24*time.Hour)
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	m := newTestTokenManager()

	token, err := m.IssueAccessToken("user-1", "alice@co.com", model.RoleJobSeeker)
	if err != nil {
		t.Fatalf("IssueAccessToken() unexpected error: %v", err)
	}

	claims, err := m.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken() unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Email != "alice@co.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "alice@co.com")
	}
	if claims.Role != model.RoleJobSeeker {
		t.Errorf("Role = %q, want %q", claims.Role, model.RoleJobSeeker)
	}
}

func TestIssueAndVerifyRefreshToken(t *testing.T) {
	m := newTestTokenManager()

	token, err := m.IssueRefreshToken("user-2", "bob@co.com", model.RoleRecruiter)
	if err != nil {
		t.Fatalf("IssueRefreshToken() unexpected error: %v", err)
	}

	claims, err := m.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("VerifyRefreshToken() unexpected error: %v", err)
	}
	if claims.Email != "bob@co.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "bob@co.com")
	}
}

// Access and refresh tokens must never be interchangeable.
func TestTokensNotInterchangeable(t *testing.T) {
	m := newTestTokenManager()

	access, err := m.IssueAccessToken("user-1", "alice@co.com", model.RoleJobSeeker)
	if err != nil {
		t.Fatalf("IssueAccessToken() unexpected error: %v", err)
	}
	refresh, err := m.IssueRefreshToken("user-1", "alice@co.com", model.RoleJobSeeker)
	if err != nil {
		t.Fatalf("IssueRefreshToken() unexpected error: %v", err)
	}

	if _, err := m.VerifyRefreshToken(access); !errors.Is(err, ErrTokenSignature) {
		t.Errorf("VerifyRefreshToken(access) error = %v, want ErrTokenSignature", err)
	}
	if _, err := m.VerifyAccessToken(refresh); !errors.Is(err, ErrTokenSignature) {
		t.Errorf("VerifyAccessToken(refresh) error = %v, want ErrTokenSignature", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewTokenManager(testAccessSecret, testRefreshSecret, -time.Minute, -time.Minute)

	token, err := m.IssueAccessToken("user-1", "alice@co.com", model.RoleJobSeeker)
	if err != nil {
		t.Fatalf("IssueAccessToken() unexpected error: %v", err)
	}

	if _, err := m.VerifyAccessToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("VerifyAccessToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	m := newTestTokenManager()

	if _, err := m.VerifyAccessToken("not-a-valid-token"); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("VerifyAccessToken() error = %v, want ErrTokenMalformed", err)
	}
}

func TestVerifyTokenWrongIssuer(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: "alice@co.com",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testAccessSecret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := newTestTokenManager().VerifyAccessToken(tokenString); err == nil {
		t.Error("VerifyAccessToken() expected error for wrong issuer")
	}
}

func TestResetToken(t *testing.T) {
	m := newTestTokenManager()

	token, err := m.IssueResetToken("alice@co.com")
	if err != nil {
		t.Fatalf("IssueResetToken() unexpected error: %v", err)
	}

	claims, err := m.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken() unexpected error: %v", err)
	}
	if claims.Email != "alice@co.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "alice@co.com")
	}
	if claims.UserID != "" {
		t.Errorf("UserID = %q, want empty for reset token", claims.UserID)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > ResetTokenTTL || ttl < ResetTokenTTL-time.Minute {
		t.Errorf("reset token TTL = %v, want about %v", ttl, ResetTokenTTL)
	}
}
