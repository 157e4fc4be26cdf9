package session

import (
	"context"
	"log/slog"

	"github.com/careerai/careerai-go/internal/client/api"
	"github.com/careerai/careerai-go/internal/client/demo"
	"github.com/careerai/careerai-go/internal/model"
)

// AuthAPI is the slice of the HTTP client the session layer depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.AuthResult, error)
	Register(ctx context.Context, req model.RegisterRequest) (api.AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	GetProfile(ctx context.Context, accessToken string) (api.Profile, error)
	Logout(ctx context.Context, accessToken string) error
}

// Session is the outcome of a login, registration, or bootstrap.
type Session struct {
	Profile      api.Profile
	Token        string
	RefreshToken string
	DemoMode     bool
	// NetworkFallback marks sessions synthesized because the backend was
	// unreachable, as opposed to deliberately demo-classified logins.
	NetworkFallback bool
}

// Authenticator decides per attempt whether to authenticate against the real
// backend or synthesize a local demo session, and persists the result.
type Authenticator struct {
	api    AuthAPI
	store  *Store
	logger *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(apiClient AuthAPI, store *Store, logger *slog.Logger) *Authenticator {
	return &Authenticator{api: apiClient, store: store, logger: logger}
}

// Login resolves a login attempt. Demo-classified emails are satisfied
// locally with any password and no network call. Real attempts that fail
// with a network-class error degrade to a temporary demo session instead of
// failing; credential and validation errors propagate unchanged.
func (a *Authenticator) Login(ctx context.Context, email, password string) (Session, error) {
	if demo.IsDemoEmail(email) {
		return a.demoSession(ctx, demo.Identity(email), false)
	}

	result, err := a.api.Login(ctx, email, password)
	if err != nil {
		if api.IsNetworkError(err) {
			a.logger.Warn("login unreachable, degrading to demo session", "email", email)
			return a.demoSession(ctx, demo.Identity(email), true)
		}
		return Session{}, err
	}

	return a.realSession(ctx, result)
}

// Register resolves a registration attempt with the same demo and
// network-fallback rules as Login.
func (a *Authenticator) Register(ctx context.Context, req model.RegisterRequest) (Session, error) {
	if demo.IsDemoEmail(req.Email) {
		return a.demoSession(ctx, demo.Identity(req.Email), false)
	}

	result, err := a.api.Register(ctx, req)
	if err != nil {
		if api.IsNetworkError(err) {
			a.logger.Warn("registration unreachable, degrading to demo session", "email", req.Email)
			return a.demoSession(ctx, demo.Identity(req.Email), true)
		}
		return Session{}, err
	}

	return a.realSession(ctx, result)
}

// Refresh exchanges the stored refresh token for a new access token. Demo
// sessions have nothing to refresh. An invalid or expired refresh token
// clears the session so the caller can force a re-login.
func (a *Authenticator) Refresh(ctx context.Context) (string, error) {
	rec, err := a.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if rec.DemoMode || demo.IsDemoToken(rec.AccessToken) {
		return rec.AccessToken, nil
	}

	token, err := a.api.RefreshToken(ctx, rec.RefreshToken)
	if err != nil {
		if api.IsAuthError(err) {
			_ = a.store.Clear(ctx)
		}
		return "", err
	}

	if err := a.store.SetAccessToken(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

// Logout clears the persisted session. For real sessions the server is
// notified best-effort; local teardown happens regardless.
func (a *Authenticator) Logout(ctx context.Context) error {
	rec, err := a.store.Load(ctx)
	if err != nil {
		return err
	}

	if rec.AccessToken != "" && !rec.DemoMode && !demo.IsDemoToken(rec.AccessToken) {
		if err := a.api.Logout(ctx, rec.AccessToken); err != nil {
			a.logger.Warn("server logout failed, clearing local session anyway", "error", err)
		}
	}

	return a.store.Clear(ctx)
}

func (a *Authenticator) realSession(ctx context.Context, result api.AuthResult) (Session, error) {
	rec := Record{
		AccessToken:  result.Token,
		RefreshToken: result.RefreshToken,
		Profile:      &result.User,
	}
	if err := a.store.Save(ctx, rec); err != nil {
		return Session{}, err
	}

	return Session{
		Profile:      result.User,
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
	}, nil
}

func (a *Authenticator) demoSession(ctx context.Context, profile api.Profile, networkFallback bool) (Session, error) {
	token := demo.NewToken()
	rec := Record{
		AccessToken:  token,
		RefreshToken: token,
		Profile:      &profile,
		DemoMode:     true,
	}
	if err := a.store.Save(ctx, rec); err != nil {
		return Session{}, err
	}

	return Session{
		Profile:         profile,
		Token:           token,
		RefreshToken:    token,
		DemoMode:        true,
		NetworkFallback: networkFallback,
	}, nil
}
