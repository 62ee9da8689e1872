package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/datatypes"

	"octopus/internal/auth"
	"octopus/internal/models"
)

func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	it, err := h.inventory.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	if it == nil {
		writeErr(w, http.StatusNotFound, "inventory item not found")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

type inventoryCreateRequest struct {
	Name              string                 `json:"name"`
	Type              models.InventoryType   `json:"type"`
	SerialNumber      string                 `json:"serial_number"`
	Status            models.InventoryStatus `json:"status"`
	AssignedUserID    *uint                  `json:"assigned_user_id"`
	AssignedProjectID *uint                  `json:"assigned_project_id"`
	PurchaseDate      *datatypes.Date        `json:"purchase_date"`
	Notes             *string                `json:"notes"`
}

func (h *Handler) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapProjectManager) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	var req inventoryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.SerialNumber) == "" {
		writeErr(w, http.StatusBadRequest, "name and serial_number are required")
		return
	}
	if !models.ValidInventoryType(req.Type) {
		writeErr(w, http.StatusBadRequest, "unknown inventory type")
		return
	}
	if req.Status == "" {
		req.Status = models.InventoryAvailable
	}
	if !models.ValidInventoryStatus(req.Status) {
		writeErr(w, http.StatusBadRequest, "unknown inventory status")
		return
	}
	if req.AssignedUserID != nil {
		ok, err := h.userExists(r, *req.AssignedUserID)
		if !checkRef(w, ok, err, "assigned user does not exist") {
			return
		}
	}
	if req.AssignedProjectID != nil {
		ok, err := h.projectExists(r, *req.AssignedProjectID)
		if !checkRef(w, ok, err, "assigned project does not exist") {
			return
		}
	}

	it := &models.InventoryItem{
		Name:              req.Name,
		Type:              req.Type,
		SerialNumber:      req.SerialNumber,
		Status:            req.Status,
		AssignedUserID:    req.AssignedUserID,
		AssignedProjectID: req.AssignedProjectID,
		PurchaseDate:      req.PurchaseDate,
		Notes:             req.Notes,
	}
	if err := h.inventory.Create(r.Context(), it); err != nil {
		writeStoreErr(w, err, "", "serial number already exists")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *Handler) UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
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
	if body.has("type") {
		var v models.InventoryType
		if body.isNull("type") || body.unmarshal("type", &v) != nil || !models.ValidInventoryType(v) {
			writeErr(w, http.StatusBadRequest, "unknown inventory type")
			return
		}
		fields["type"] = v
	}
	if body.has("serial_number") {
		var v string
		if body.isNull("serial_number") || body.unmarshal("serial_number", &v) != nil || strings.TrimSpace(v) == "" {
			writeErr(w, http.StatusBadRequest, "serial_number must be a non-empty string")
			return
		}
		fields["serial_number"] = v
	}
	if body.has("status") {
		var v models.InventoryStatus
		if body.isNull("status") || body.unmarshal("status", &v) != nil || !models.ValidInventoryStatus(v) {
			writeErr(w, http.StatusBadRequest, "unknown inventory status")
			return
		}
		fields["status"] = v
	}
	if body.has("assigned_user_id") {
		if body.isNull("assigned_user_id") {
			fields["assigned_user_id"] = nil
		} else {
			var v uint
			if body.unmarshal("assigned_user_id", &v) != nil {
				writeErr(w, http.StatusBadRequest, "assigned_user_id must be an integer")
				return
			}
			ok, err := h.userExists(r, v)
			if !checkRef(w, ok, err, "assigned user does not exist") {
				return
			}
			fields["assigned_user_id"] = v
		}
	}
	if body.has("assigned_project_id") {
		if body.isNull("assigned_project_id") {
			fields["assigned_project_id"] = nil
		} else {
			var v uint
			if body.unmarshal("assigned_project_id", &v) != nil {
				writeErr(w, http.StatusBadRequest, "assigned_project_id must be an integer")
				return
			}
			ok, err := h.projectExists(r, v)
			if !checkRef(w, ok, err, "assigned project does not exist") {
				return
			}
			fields["assigned_project_id"] = v
		}
	}
	if body.has("purchase_date") {
		if body.isNull("purchase_date") {
			fields["purchase_date"] = nil
		} else {
			var v datatypes.Date
			if body.unmarshal("purchase_date", &v) != nil {
				writeErr(w, http.StatusBadRequest, "purchase_date must be a date")
				return
			}
			fields["purchase_date"] = v
		}
	}
	if body.has("notes") {
		if body.isNull("notes") {
			fields["notes"] = nil
		} else {
			var v string
			if body.unmarshal("notes", &v) != nil {
				writeErr(w, http.StatusBadRequest, "notes must be a string")
				return
			}
			fields["notes"] = v
		}
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	it, err := h.inventory.Update(r.Context(), id, fields)
	if err != nil {
		writeStoreErr(w, err, "inventory item not found", "serial number already exists")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	if !auth.HasCapability(auth.CallerFrom(r.Context()), auth.CapProjectManager) {
		writeErr(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.inventory.Delete(r.Context(), id); err != nil {
		writeStoreErr(w, err, "inventory item not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
