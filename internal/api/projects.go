package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"octopus/internal/auth"
	"octopus/internal/models"
)

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.projects.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	if p == nil {
		writeErr(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type projectCreateRequest struct {
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	ProjectManagerID *uint   `json:"project_manager_id"`
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapProjectManager) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	var req projectCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.ProjectManagerID != nil {
		ok, err := h.userExists(r, *req.ProjectManagerID)
		if !checkRef(w, ok, err, "project manager does not exist") {
			return
		}
	}
	p := &models.Project{
		Name:             req.Name,
		Description:      req.Description,
		ProjectManagerID: req.ProjectManagerID,
	}
	if err := h.projects.Create(r.Context(), p); err != nil {
		writeStoreErr(w, err, "", "project name already exists")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapProjectManager) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	body, err := decodePatch(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	fields := map[string]any{}
	if body.has("name") {
		var v string
		if body.isNull("name") || body.unmarshal("name", &v) != nil || strings.TrimSpace(v) == "" {
			writeErr(w, http.StatusBadRequest, "name must be a non-empty string")
			return
		}
		fields["name"] = v
	}
	if body.has("description") {
		if body.isNull("description") {
			fields["description"] = nil
		} else {
			var v string
			if body.unmarshal("description", &v) != nil {
				writeErr(w, http.StatusBadRequest, "description must be a string")
				return
			}
			fields["description"] = v
		}
	}
	if body.has("project_manager_id") {
		if body.isNull("project_manager_id") {
			fields["project_manager_id"] = nil
		} else {
			var v uint
			if body.unmarshal("project_manager_id", &v) != nil {
				writeErr(w, http.StatusBadRequest, "project_manager_id must be an integer")
				return
			}
			ok, err := h.userExists(r, v)
			if !checkRef(w, ok, err, "project manager does not exist") {
				return
			}
			fields["project_manager_id"] = v
		}
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.projects.Update(r.Context(), id, fields)
	if err != nil {
		writeStoreErr(w, err, "project not found", "project name already exists")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapAdmin) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.projects.Delete(r.Context(), id); err != nil {
		writeStoreErr(w, err, "project not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
