package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerai/careerai-go/internal/model"
)

func envelope(success bool, data any, errMsg string) []byte {
	body, _ := json.Marshal(map[string]any{
		"success": success,
		"data":    data,
		"error":   errMsg,
	})
	return body
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice@co.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		w.Write(envelope(true, model.AuthResponse{
			User:         model.UserResponse{ID: "user-1", Email: "alice@co.com", Role: model.RoleJobSeeker},
			Token:        "access-token",
			RefreshToken: "refresh-token",
		}, ""))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.Login(context.Background(), "alice@co.com", "Str0ngPass!")
	require.NoError(t, err)

	assert.Equal(t, "access-token", result.Token)
	assert.Equal(t, "refresh-token", result.RefreshToken)
	assert.Equal(t, "alice@co.com", result.User.Email)
	assert.False(t, result.User.IsDemo)
}

func TestErrorKindMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, KindAuth},
		{"not found", http.StatusNotFound, KindNotFound},
		{"conflict", http.StatusConflict, KindConflict},
		{"bad request", http.StatusBadRequest, KindValidation},
		{"server error", http.StatusInternalServerError, KindServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write(envelope(false, nil, "nope"))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Login(context.Background(), "a@b.com", "pw")
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.want, apiErr.Kind)
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}

// An unreachable server maps to KindNetwork, the trigger for demo fallback.
func TestNetworkErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // deliberately dead

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.False(t, IsAuthError(err))
}

func TestGetProfileSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer the-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(envelope(true, model.UserResponse{ID: "user-1", Email: "alice@co.com"}, ""))
	}))
	defer srv.Close()

	profile, err := NewClient(srv.URL).GetProfile(context.Background(), "the-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
}

func TestRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "the-refresh", req.RefreshToken)

		w.Header().Set("Content-Type", "application/json")
		w.Write(envelope(true, model.RefreshResponse{Token: "fresh-access"}, ""))
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL).RefreshToken(context.Background(), "the-refresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", token)
}

// A 200 with a failure envelope still surfaces as an error.
func TestEnvelopeFailureWithoutHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(envelope(false, nil, "something broke"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).ForgotPassword(context.Background(), "a@b.com")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindServer, apiErr.Kind)
}
