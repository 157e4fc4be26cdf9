// Package api is the HTTP boundary of the client core. Every call applies a
// bounded timeout, and every failure comes back as a tagged *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/careerai/careerai-go/internal/model"
)

const defaultTimeout = 10 * time.Second

// Profile is the client-side identity snapshot. IsDemo marks locally
// synthesized identities; the server never sets it.
type Profile struct {
	model.UserResponse
	IsDemo bool `json:"is_demo,omitempty"`
}

// AuthResult is a successful login or registration.
type AuthResult struct {
	User         Profile
	Token        string
	RefreshToken string
}

// Client talks to the CareerAI auth endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL (e.g. "http://host:8000").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var data model.AuthResponse
	err := c.post(ctx, "/api/auth/login", model.LoginRequest{Email: email, Password: password}, "", &data)
	if err != nil {
		return AuthResult{}, err
	}
	return authResult(data), nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (AuthResult, error) {
	var data model.AuthResponse
	if err := c.post(ctx, "/api/auth/register", req, "", &data); err != nil {
		return AuthResult{}, err
	}
	return authResult(data), nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	var data model.RefreshResponse
	err := c.post(ctx, "/api/auth/refresh-token", model.RefreshRequest{RefreshToken: refreshToken}, "", &data)
	if err != nil {
		return "", err
	}
	return data.Token, nil
}

// GetProfile fetches the identity behind the access token.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (Profile, error) {
	var data model.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, accessToken, &data); err != nil {
		return Profile{}, err
	}
	return Profile{UserResponse: data}, nil
}

// Logout tells the server to record the logout. Token disposal is local.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", struct{}{}, accessToken, nil)
}

// ForgotPassword requests a password-reset mail.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/forgot-password", model.ForgotPasswordRequest{Email: email}, "", nil)
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.post(ctx, "/api/auth/reset-password", model.ResetPasswordRequest{Token: token, NewPassword: newPassword}, "", nil)
}

func (c *Client) post(ctx context.Context, path string, body any, token string, out any) error {
	return c.do(ctx, http.MethodPost, path, body, token, out)
}

func authResult(data model.AuthResponse) AuthResult {
	return AuthResult{
		User:         Profile{UserResponse: data.User},
		Token:        data.Token,
		RefreshToken: data.RefreshToken,
	}
}

// do performs the request and maps the outcome onto tagged errors: transport
// failures (including timeouts) become KindNetwork, HTTP statuses map onto
// the remaining kinds.
func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "encoding request", cause: err}
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Kind: KindValidation, Message: "building request", cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "request failed", cause: err}
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &Error{Kind: KindServer, Message: "undecodable response", cause: err}
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		return &Error{Kind: kindForStatus(resp.StatusCode), Message: envelope.Error}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &Error{Kind: KindServer, Message: "unexpected payload shape", cause: err}
		}
	}

	return nil
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}
