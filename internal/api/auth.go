package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"octopus/internal/auth"
	"octopus/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token,omitempty"`
	TokenType   string       `json:"token_type,omitempty"`
	User        *models.User `json:"user,omitempty"`

	TwoFactorRequired bool       `json:"two_factor_required,omitempty"`
	TwoFactorToken    string     `json:"two_factor_token,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	Message           string     `json:"message,omitempty"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeErr(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, auth.ErrUserInactive):
			writeErr(w, http.StatusForbidden, err.Error())
		default:
			writeErr(w, http.StatusInternalServerError, "storage error")
		}
		return
	}
	if res.TwoFactorRequired {
		expires := res.ExpiresAt
		writeJSON(w, http.StatusOK, loginResponse{
			TwoFactorRequired: true,
			TwoFactorToken:    res.TwoFactorToken,
			ExpiresAt:         &expires,
			Message:           "verification code sent",
		})
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		User:        res.User,
	})
}

type verifyTwoFactorRequest struct {
	Token string `json:"token"`
	Code  string `json:"code"`
}

func (h *Handler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req verifyTwoFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	res, err := h.auth.VerifyTwoFactor(r.Context(), req.Token, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrChallengeNotFound), errors.Is(err, auth.ErrUserNotFound):
			writeErr(w, http.StatusNotFound, err.Error())
		case errors.Is(err, auth.ErrChallengeExpired), errors.Is(err, auth.ErrCodeMismatch):
			writeErr(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrUserInactive):
			writeErr(w, http.StatusForbidden, err.Error())
		default:
			writeErr(w, http.StatusInternalServerError, "storage error")
		}
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		User:        res.User,
	})
}

type registerRequest struct {
	Email            string          `json:"email"`
	FullName         string          `json:"full_name"`
	Password         string          `json:"password"`
	Role             models.UserRole `json:"role"`
	IsActive         *bool           `json:"is_active"`
	TwoFactorEnabled *bool           `json:"two_factor_enabled"`
}

// validate заполняет дефолты и проверяет обязательные поля.
func (req *registerRequest) validate() string {
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return "valid email is required"
	}
	if strings.TrimSpace(req.FullName) == "" {
		return "full_name is required"
	}
	if req.Role == "" {
		req.Role = models.RoleStandardUser
	}
	if !models.ValidRole(req.Role) {
		return "unknown role"
	}
	return ""
}

func (req *registerRequest) toInput() auth.RegisterInput {
	in := auth.RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
		IsActive: true,
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
	if req.TwoFactorEnabled != nil {
		in.TwoFactorEnabled = *req.TwoFactorEnabled
	}
	return in
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	u, err := h.auth.Register(r.Context(), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken), errors.Is(err, auth.ErrPasswordTooShort):
			writeErr(w, http.StatusBadRequest, err.Error())
		default:
			writeErr(w, http.StatusInternalServerError, "storage error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, u)
}
