package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careerai/careerai-go/internal/model"
)

const (
	tokenIssuer   = "careerai"
	tokenAudience = "careerai-api"

	// ResetTokenTTL bounds how long a password-reset token stays usable.
	ResetTokenTTL = time.Hour
)

// Verification failures are collapsed into three kinds so callers can branch
// on the kind instead of inspecting message text.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenMalformed = errors.New("malformed token")
)

// Claims is the signed payload carried by access, refresh, and reset tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID string     `json:"user_id,omitempty"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role,omitempty"`
}

// TokenManager issues and verifies the two bearer tokens. Access and refresh
// tokens are signed with distinct secrets so compromise of one cannot forge
// the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager creates a TokenManager with the given secrets and TTLs.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs an access token for the identity.
func (m *TokenManager) IssueAccessToken(userID, email string, role model.Role) (string, error) {
	return sign(m.accessSecret, userID, email, role, m.accessTTL)
}

// IssueRefreshToken signs a refresh token carrying the same claim shape.
func (m *TokenManager) IssueRefreshToken(userID, email string, role model.Role) (string, error) {
	return sign(m.refreshSecret, userID, email, role, m.refreshTTL)
}

// IssueResetToken signs a short-lived single-purpose password-reset token
// bound to the email. Reset tokens use the access secret.
func (m *TokenManager) IssueResetToken(email string) (string, error) {
	return sign(m.accessSecret, "", email, "", ResetTokenTTL)
}

// VerifyAccessToken validates an access or reset token.
func (m *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return verify(token, m.accessSecret)
}

// VerifyRefreshToken validates a refresh token.
func (m *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return verify(token, m.refreshSecret)
}

// AccessTTL returns the configured access-token lifetime.
func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

func sign(secret []byte, userID, email string, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
