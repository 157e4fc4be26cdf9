package handler

import (
	"errors"
	"net/http"

	"github.com/careerai/careerai-go/internal/middleware"
	"github.com/careerai/careerai-go/internal/model"
	"github.com/careerai/careerai-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
	devMode bool
}

// NewAuthHandler creates an AuthHandler. devMode controls whether stack
// traces are attached to 500 responses.
func NewAuthHandler(svc *service.AuthService, devMode bool) *AuthHandler {
	return &AuthHandler{service: svc, devMode: devMode}
}

// HandleRegister handles POST /api/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired),
			errors.Is(err, service.ErrPasswordRequired),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeInternalError(w, err, h.devMode)
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.OK(resp, "User registered successfully"))
}

// HandleLogin handles POST /api/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeInternalError(w, err, h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, model.OK(resp, "Login successful"))
}

// HandleLogout handles POST /api/auth/logout. Tokens stay valid until expiry;
// the client is expected to discard them.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.service.Logout(r.Context(), claims.Email)
	writeJSON(w, http.StatusOK, model.Envelope{Success: true, Message: "Logged out successfully"})
}

// HandleRefreshToken handles POST /api/auth/refresh-token.
func (h *AuthHandler) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeInternalError(w, err, h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, model.OK(resp, "Token refreshed successfully"))
}

// HandleProfile handles GET /api/auth/profile.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	resp, err := h.service.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, model.OK(resp, "Profile retrieved successfully"))
}

// HandleForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := h.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrEmailRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(w, err, h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, model.Envelope{Success: true, Message: msg})
}

// HandleResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPasswordRequired), errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(w, err, h.devMode)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.Envelope{Success: true, Message: "Password reset successfully"})
}
