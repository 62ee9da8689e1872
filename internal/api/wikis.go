package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"octopus/internal/auth"
	"octopus/internal/models"
)

func (h *Handler) ListWikis(w http.ResponseWriter, r *http.Request) {
	pages, err := h.wikis.List(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (h *Handler) GetWiki(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.wikis.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	if p == nil {
		writeErr(w, http.StatusNotFound, "wiki page not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type wikiCreateRequest struct {
	ProjectID uint   `json:"project_id"`
	AuthorID  uint   `json:"author_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

func (h *Handler) CreateWiki(w http.ResponseWriter, r *http.Request) {
	if !auth.CanEditWiki(auth.CallerFrom(r.Context())) {
		writeErr(w, http.StatusForbidden, "viewers cannot create wiki pages")
		return
	}
	var req wikiCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.ProjectID == 0 || req.AuthorID == 0 || strings.TrimSpace(req.Title) == "" {
		writeErr(w, http.StatusBadRequest, "project_id, author_id and title are required")
		return
	}
	ok, err := h.projectExists(r, req.ProjectID)
	if !checkRef(w, ok, err, "project does not exist") {
		return
	}
	ok, err = h.userExists(r, req.AuthorID)
	if !checkRef(w, ok, err, "author does not exist") {
		return
	}
	p := &models.WikiPage{
		ProjectID: req.ProjectID,
		AuthorID:  req.AuthorID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := h.wikis.Create(r.Context(), p); err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateWiki(w http.ResponseWriter, r *http.Request) {
	if !auth.CanEditWiki(auth.CallerFrom(r.Context())) {
		writeErr(w, http.StatusForbidden, "viewers cannot edit wiki pages")
		return
	}
	body, err := decodePatch(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	fields := map[string]any{}
	if body.has("title") {
		var v string
		if body.isNull("title") || body.unmarshal("title", &v) != nil || strings.TrimSpace(v) == "" {
			writeErr(w, http.StatusBadRequest, "title must be a non-empty string")
			return
		}
		fields["title"] = v
	}
	if body.has("content") {
		var v string
		if body.isNull("content") || body.unmarshal("content", &v) != nil {
			writeErr(w, http.StatusBadRequest, "content must be a string")
			return
		}
		fields["content"] = v
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.wikis.Update(r.Context(), id, fields)
	if err != nil {
		writeStoreErr(w, err, "wiki page not found", "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteWiki(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapProjectManager) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.wikis.Delete(r.Context(), id); err != nil {
		writeStoreErr(w, err, "wiki page not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
