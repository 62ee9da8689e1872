package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"octopus/internal/auth"
	"octopus/internal/models"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, auth.CallerFrom(r.Context()))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapAdmin) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	users, err := h.users.List(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapAdmin) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	if u == nil {
		writeErr(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CreateUser — то же, что register, но за админским гейтом и с 409
// на повторный email (repo-уровень уникальности).
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapAdmin) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
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
		case errors.Is(err, auth.ErrPasswordTooShort):
			writeErr(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			writeErr(w, http.StatusConflict, err.Error())
		default:
			writeErr(w, http.StatusInternalServerError, "storage error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapAdmin) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	body, err := decodePatch(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	fields := map[string]any{}
	if body.has("full_name") {
		var v string
		if body.isNull("full_name") || body.unmarshal("full_name", &v) != nil {
			writeErr(w, http.StatusBadRequest, "full_name must be a string")
			return
		}
		fields["full_name"] = v
	}
	if body.has("role") {
		var v models.UserRole
		if body.isNull("role") || body.unmarshal("role", &v) != nil || !models.ValidRole(v) {
			writeErr(w, http.StatusBadRequest, "unknown role")
			return
		}
		fields["role"] = v
	}
	if body.has("is_active") {
		var v bool
		if body.isNull("is_active") || body.unmarshal("is_active", &v) != nil {
			writeErr(w, http.StatusBadRequest, "is_active must be a boolean")
			return
		}
		fields["is_active"] = v
	}
	if body.has("two_factor_enabled") {
		var v bool
		if body.isNull("two_factor_enabled") || body.unmarshal("two_factor_enabled", &v) != nil {
			writeErr(w, http.StatusBadRequest, "two_factor_enabled must be a boolean")
			return
		}
		fields["two_factor_enabled"] = v
	}
	if body.has("password") && !body.isNull("password") {
		var v string
		if body.unmarshal("password", &v) != nil || len(v) < 6 {
			writeErr(w, http.StatusBadRequest, "password must be at least 6 characters")
			return
		}
		hash, err := auth.HashPassword(v)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "hash error")
			return
		}
		fields["hashed_password"] = hash
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := h.users.Update(r.Context(), id, fields)
	if err != nil {
		writeStoreErr(w, err, "user not found", "email already registered")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	if !auth.HasCapability(caller, auth.CapAdmin) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !auth.CanDeleteUser(caller, id) {
		writeErr(w, http.StatusConflict, "cannot delete your own account")
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		writeStoreErr(w, err, "user not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
