package api

import (
	"fmt"
	"net/http"
	"testing"

	"octopus/internal/models"
)

func TestInventoryLifecycle(t *testing.T) {
	e := newEnv(t)
	_, pmTok := e.addUser(t, models.RoleProjectManager, true)
	holder, _ := e.addUser(t, models.RoleStandardUser, true)

	w := e.do(t, http.MethodPost, "/api/inventory", pmTok, map[string]any{
		"name":          "ThinkPad X1",
		"type":          "COMPUTER",
		"serial_number": "SN-0001",
		"purchase_date": "2024-03-15",
	})
	wantStatus(t, w, http.StatusCreated)
	item := decodeBody[models.InventoryItem](t, w)
	if item.Status != models.InventoryAvailable {
		t.Fatalf("default status = %q, want AVAILABLE", item.Status)
	}
	if item.PurchaseDate == nil {
		t.Fatal("purchase_date lost on create")
	}

	path := fmt.Sprintf("/api/inventory/%d", item.ID)

	// Выдаём технику пользователю, остальные поля не трогаем.
	w = e.do(t, http.MethodPut, path, pmTok, map[string]any{
		"status":           "ASSIGNED",
		"assigned_user_id": holder.ID,
	})
	wantStatus(t, w, http.StatusOK)
	updated := decodeBody[models.InventoryItem](t, w)
	if updated.Status != models.InventoryAssigned {
		t.Fatalf("status = %q, want ASSIGNED", updated.Status)
	}
	if updated.AssignedUserID == nil || *updated.AssignedUserID != holder.ID {
		t.Fatalf("assigned_user_id = %v, want %d", updated.AssignedUserID, holder.ID)
	}
	if updated.SerialNumber != "SN-0001" || updated.Name != "ThinkPad X1" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}

	// Возврат на склад: null снимает привязку.
	w = e.do(t, http.MethodPut, path, pmTok, `{"status": "AVAILABLE", "assigned_user_id": null}`)
	wantStatus(t, w, http.StatusOK)
	updated = decodeBody[models.InventoryItem](t, w)
	if updated.AssignedUserID != nil {
		t.Fatal("null must clear assigned_user_id")
	}

	wantStatus(t, e.do(t, http.MethodDelete, path, pmTok, nil), http.StatusNoContent)
	wantStatus(t, e.do(t, http.MethodGet, path, pmTok, nil), http.StatusNotFound)
}

func TestInventoryDuplicateSerial(t *testing.T) {
	e := newEnv(t)
	_, pmTok := e.addUser(t, models.RoleProjectManager, true)

	body := map[string]any{"name": "Monitor", "type": "MONITOR", "serial_number": "SN-DUP"}
	wantStatus(t, e.do(t, http.MethodPost, "/api/inventory", pmTok, body), http.StatusCreated)

	body["name"] = "Another Monitor"
	wantStatus(t, e.do(t, http.MethodPost, "/api/inventory", pmTok, body), http.StatusConflict)
}

func TestInventoryValidation(t *testing.T) {
	e := newEnv(t)
	_, pmTok := e.addUser(t, models.RoleProjectManager, true)

	wantStatus(t, e.do(t, http.MethodPost, "/api/inventory", pmTok, map[string]any{
		"name": "No serial", "type": "PHONE",
	}), http.StatusBadRequest)
	wantStatus(t, e.do(t, http.MethodPost, "/api/inventory", pmTok, map[string]any{
		"name": "Bad type", "type": "TOASTER", "serial_number": "SN-1",
	}), http.StatusBadRequest)
	wantStatus(t, e.do(t, http.MethodPost, "/api/inventory", pmTok, map[string]any{
		"name": "Bad status", "type": "PHONE", "serial_number": "SN-2", "status": "LOST",
	}), http.StatusBadRequest)
}

func TestInventoryDanglingReferences(t *testing.T) {
	e := newEnv(t)
	_, pmTok := e.addUser(t, models.RoleProjectManager, true)

	// Привязка к несуществующему пользователю или проекту — 400.
	wantStatus(t, e.do(t, http.MethodPost, "/api/inventory", pmTok, map[string]any{
		"name": "Laptop", "type": "COMPUTER", "serial_number": "SN-GH1",
		"assigned_user_id": 9999,
	}), http.StatusBadRequest)
	wantStatus(t, e.do(t, http.MethodPost, "/api/inventory", pmTok, map[string]any{
		"name": "Laptop", "type": "COMPUTER", "serial_number": "SN-GH2",
		"assigned_project_id": 9999,
	}), http.StatusBadRequest)

	w := e.do(t, http.MethodPost, "/api/inventory", pmTok, map[string]any{
		"name": "Laptop", "type": "COMPUTER", "serial_number": "SN-OK",
	})
	wantStatus(t, w, http.StatusCreated)
	item := decodeBody[models.InventoryItem](t, w)
	path := fmt.Sprintf("/api/inventory/%d", item.ID)

	wantStatus(t, e.do(t, http.MethodPut, path, pmTok,
		map[string]any{"assigned_user_id": 9999}), http.StatusBadRequest)
	wantStatus(t, e.do(t, http.MethodPut, path, pmTok,
		map[string]any{"assigned_project_id": 9999}), http.StatusBadRequest)
	if it := e.inventory.byID[item.ID]; it.AssignedUserID != nil || it.AssignedProjectID != nil {
		t.Fatal("rejected updates must not attach the item to anything")
	}
}

func TestInventoryAccess(t *testing.T) {
	e := newEnv(t)
	_, pmTok := e.addUser(t, models.RoleProjectManager, true)
	_, userTok := e.addUser(t, models.RoleStandardUser, true)

	w := e.do(t, http.MethodPost, "/api/inventory", pmTok, map[string]any{
		"name": "Tablet", "type": "TABLET", "serial_number": "SN-TAB",
	})
	wantStatus(t, w, http.StatusCreated)
	item := decodeBody[models.InventoryItem](t, w)
	path := fmt.Sprintf("/api/inventory/%d", item.ID)

	// Обычный пользователь видит склад, но не управляет им.
	wantStatus(t, e.do(t, http.MethodGet, "/api/inventory", userTok, nil), http.StatusOK)
	wantStatus(t, e.do(t, http.MethodGet, path, userTok, nil), http.StatusOK)
	wantStatus(t, e.do(t, http.MethodPost, "/api/inventory", userTok, map[string]any{
		"name": "Mine now", "type": "PHONE", "serial_number": "SN-X",
	}), http.StatusForbidden)
	wantStatus(t, e.do(t, http.MethodPut, path, userTok, map[string]any{"status": "MAINTENANCE"}), http.StatusForbidden)
	wantStatus(t, e.do(t, http.MethodDelete, path, userTok, nil), http.StatusForbidden)
}
