package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/careerai/careerai-go/internal/crypto"
	"github.com/careerai/careerai-go/internal/mailer"
	"github.com/careerai/careerai-go/internal/model"
	"github.com/careerai/careerai-go/internal/repository"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidRefresh     = errors.New("Invalid refresh token")
	ErrInvalidResetToken  = errors.New("Invalid or expired reset token")
)

// resetMessage is returned by ForgotPassword regardless of whether the email
// exists, so responses cannot be used to enumerate accounts.
const resetMessage = "If an account with that email exists, we have sent a password reset link."

// AuthService orchestrates registration, login, token refresh, and password
// reset. All collaborators are injected; the service holds no ambient state.
type AuthService struct {
	store      repository.UserStore
	tokens     *crypto.TokenManager
	mail       mailer.Mailer
	logger     *slog.Logger
	bcryptCost int
}

// NewAuthService creates an AuthService.
func NewAuthService(store repository.UserStore, tokens *crypto.TokenManager, mail mailer.Mailer, logger *slog.Logger, bcryptCost int) *AuthService {
	return &AuthService{
		store:      store,
		tokens:     tokens,
		mail:       mail,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new identity and returns it with a fresh token pair.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}
	if len(req.Password) < 8 {
		return model.AuthResponse{}, ErrPasswordTooShort
	}
	if req.Role == "" {
		req.Role = model.RoleJobSeeker
	}
	if !model.ValidRole(req.Role) {
		return model.AuthResponse{}, ErrInvalidRole
	}

	hash, err := crypto.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Skills:       []string{},
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	resp, err := s.issueTokenPair(user)
	if err != nil {
		return model.AuthResponse{}, err
	}

	s.logger.Info("user registered successfully", "email", user.Email, "role", user.Role)
	return resp, nil
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords are indistinguishable in the returned error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	resp, err := s.issueTokenPair(user)
	if err != nil {
		return model.AuthResponse{}, err
	}

	s.logger.Info("user logged in successfully", "email", user.Email)
	return resp, nil
}

// Logout records the event. Tokens are bearer credentials with no server-side
// revocation, so discarding them is the client's job.
func (s *AuthService) Logout(ctx context.Context, email string) {
	s.logger.Info("user logged out", "email", email)
}

// Refresh verifies a refresh token and mints a new access token with the same
// claims. The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.RefreshResponse, error) {
	if refreshToken == "" {
		return model.RefreshResponse{}, ErrInvalidRefresh
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return model.RefreshResponse{}, ErrInvalidRefresh
	}

	token, err := s.tokens.IssueAccessToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return model.RefreshResponse{}, err
	}

	return model.RefreshResponse{Token: token}, nil
}

// GetProfile returns the identity record for the given user ID.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}
	return user.Response(), nil
}

// ForgotPassword issues a reset token and hands it to the mailer. The
// returned message is identical whether or not the account exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", ErrEmailRequired
	}

	token, err := s.tokens.IssueResetToken(email)
	if err != nil {
		return "", err
	}

	if err := s.mail.SendPasswordReset(ctx, email, token); err != nil {
		s.logger.Error("sending password reset mail", "error", err)
	}

	return resetMessage, nil
}

// ResetPassword verifies a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	claims, err := s.tokens.VerifyAccessToken(resetToken)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := crypto.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.store.UpdatePassword(ctx, claims.Email, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	s.logger.Info("password reset successfully", "email", claims.Email)
	return nil
}

func (s *AuthService) issueTokenPair(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.IssueAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return model.AuthResponse{}, err
	}

	refresh, err := s.tokens.IssueRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		User:         user.Response(),
		Token:        token,
		RefreshToken: refresh,
	}, nil
}
