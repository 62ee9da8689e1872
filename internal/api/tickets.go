package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"octopus/internal/auth"
	"octopus/internal/models"
	"octopus/internal/repo"
)

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	var f repo.TicketFilter
	if v := r.URL.Query().Get("project_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "project_id must be an integer")
			return
		}
		id := uint(n)
		f.ProjectID = &id
	}
	if v := r.URL.Query().Get("status"); v != "" {
		st := models.TicketStatus(v)
		if !models.ValidStatus(st) {
			writeErr(w, http.StatusBadRequest, "unknown ticket status")
			return
		}
		f.Status = &st
	}

	tickets, err := h.tickets.List(r.Context(), f)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.tickets.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	if t == nil {
		writeErr(w, http.StatusNotFound, "ticket not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type ticketCreateRequest struct {
	ProjectID   uint                  `json:"project_id"`
	ReporterID  uint                  `json:"reporter_id"`
	AssigneeID  *uint                 `json:"assignee_id"`
	Title       string                `json:"title"`
	Description *string               `json:"description"`
	Priority    models.TicketPriority `json:"priority"`
	Status      models.TicketStatus   `json:"status"`
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	var req ticketCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.ProjectID == 0 || req.ReporterID == 0 || strings.TrimSpace(req.Title) == "" {
		writeErr(w, http.StatusBadRequest, "project_id, reporter_id and title are required")
		return
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if !models.ValidPriority(req.Priority) {
		writeErr(w, http.StatusBadRequest, "unknown ticket priority")
		return
	}
	if !models.ValidStatus(req.Status) {
		writeErr(w, http.StatusBadRequest, "unknown ticket status")
		return
	}
	if !auth.CanCreateTicket(caller, req.ReporterID) {
		writeErr(w, http.StatusForbidden, "cannot create tickets on behalf of other users")
		return
	}
	ok, err := h.projectExists(r, req.ProjectID)
	if !checkRef(w, ok, err, "project does not exist") {
		return
	}
	ok, err = h.userExists(r, req.ReporterID)
	if !checkRef(w, ok, err, "reporter does not exist") {
		return
	}
	if req.AssigneeID != nil {
		ok, err = h.userExists(r, *req.AssigneeID)
		if !checkRef(w, ok, err, "assignee does not exist") {
			return
		}
	}

	t := &models.Ticket{
		ProjectID:   req.ProjectID,
		ReporterID:  req.ReporterID,
		AssigneeID:  req.AssigneeID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	if err := h.tickets.Create(r.Context(), t); err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := h.tickets.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	if t == nil {
		writeErr(w, http.StatusNotFound, "ticket not found")
		return
	}
	if !auth.CanUpdateTicket(caller, t) {
		writeErr(w, http.StatusForbidden, "no permission to update this ticket")
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
	if body.has("priority") {
		var v models.TicketPriority
		if body.isNull("priority") || body.unmarshal("priority", &v) != nil || !models.ValidPriority(v) {
			writeErr(w, http.StatusBadRequest, "unknown ticket priority")
			return
		}
		fields["priority"] = v
	}
	if body.has("status") {
		var v models.TicketStatus
		if body.isNull("status") || body.unmarshal("status", &v) != nil || !models.ValidStatus(v) {
			writeErr(w, http.StatusBadRequest, "unknown ticket status")
			return
		}
		fields["status"] = v
	}
	if body.has("assignee_id") {
		if body.isNull("assignee_id") {
			fields["assignee_id"] = nil
		} else {
			var v uint
			if body.unmarshal("assignee_id", &v) != nil {
				writeErr(w, http.StatusBadRequest, "assignee_id must be an integer")
				return
			}
			exists, err := h.userExists(r, v)
			if !checkRef(w, exists, err, "assignee does not exist") {
				return
			}
			fields["assignee_id"] = v
		}
	}

	updated, err := h.tickets.Update(r.Context(), id, fields)
	if err != nil {
		writeStoreErr(w, err, "ticket not found", "")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapAdmin) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.tickets.Delete(r.Context(), id); err != nil {
		writeStoreErr(w, err, "ticket not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
