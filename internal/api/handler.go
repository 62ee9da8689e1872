package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"octopus/internal/auth"
	"octopus/internal/models"
	"octopus/internal/repo"
)

type Handler struct {
	auth      *auth.Service
	users     UserStore
	projects  ProjectStore
	tickets   TicketStore
	wikis     WikiStore
	inventory InventoryStore
	stats     StatsStore
}

func NewHandler(
	authSvc *auth.Service,
	users UserStore,
	projects ProjectStore,
	tickets TicketStore,
	wikis WikiStore,
	inventory InventoryStore,
	stats StatsStore,
) *Handler {
	return &Handler{
		auth:      authSvc,
		users:     users,
		projects:  projects,
		tickets:   tickets,
		wikis:     wikis,
		inventory: inventory,
		stats:     stats,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	models.WriteJSON(w, status, v)
}

func writeErr(w http.ResponseWriter, status int, detail string) {
	models.WriteError(w, status, detail)
}

// writeStoreErr — общий маппинг ошибок хранилища на статусы.
func writeStoreErr(w http.ResponseWriter, err error, notFoundMsg, conflictMsg string) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeErr(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, repo.ErrConflict):
		writeErr(w, http.StatusConflict, conflictMsg)
	default:
		writeErr(w, http.StatusInternalServerError, "storage error")
	}
}

// pathID достаёт числовой {id} из пути. Маршрут ограничен [0-9]+, но
// строка может не влезать в uint64 — тогда 400, а не сломанный ноль.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(n), true
}

// userExists/projectExists — проверки ссылок из тел запросов: висячие
// reporter/assignee/author/manager и project-ссылки не должны попадать
// в хранилище.
func (h *Handler) userExists(r *http.Request, id uint) (bool, error) {
	u, err := h.users.GetByID(r.Context(), id)
	return u != nil, err
}

func (h *Handler) projectExists(r *http.Request, id uint) (bool, error) {
	p, err := h.projects.GetByID(r.Context(), id)
	return p != nil, err
}

// checkRef сводит исход проверки к одному ответу: 500 на ошибку
// хранилища, 400 на висячую ссылку.
func checkRef(w http.ResponseWriter, ok bool, err error, detail string) bool {
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return false
	}
	if !ok {
		writeErr(w, http.StatusBadRequest, detail)
		return false
	}
	return true
}
