package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes монтирует API под /api. Auth-эндпоинты открыты, всё
// остальное — за RequireAuth (порядок регистрации важен: mux берёт
// первый подошедший маршрут).
func RegisterRoutes(r *mux.Router, h *Handler, requireAuth mux.MiddlewareFunc) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-2fa", h.VerifyTwoFactor).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", h.RegisterUser).Methods(http.MethodPost)

	sec := api.PathPrefix("/").Subrouter()
	sec.Use(requireAuth)

	sec.HandleFunc("/users/me", h.Me).Methods(http.MethodGet)
	sec.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	sec.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)
	sec.HandleFunc("/users/{id:[0-9]+}", h.GetUser).Methods(http.MethodGet)
	sec.HandleFunc("/users/{id:[0-9]+}", h.UpdateUser).Methods(http.MethodPut)
	sec.HandleFunc("/users/{id:[0-9]+}", h.DeleteUser).Methods(http.MethodDelete)

	sec.HandleFunc("/projects", h.ListProjects).Methods(http.MethodGet)
	sec.HandleFunc("/projects", h.CreateProject).Methods(http.MethodPost)
	sec.HandleFunc("/projects/{id:[0-9]+}", h.GetProject).Methods(http.MethodGet)
	sec.HandleFunc("/projects/{id:[0-9]+}", h.UpdateProject).Methods(http.MethodPut)
	sec.HandleFunc("/projects/{id:[0-9]+}", h.DeleteProject).Methods(http.MethodDelete)

	sec.HandleFunc("/tickets", h.ListTickets).Methods(http.MethodGet)
	sec.HandleFunc("/tickets", h.CreateTicket).Methods(http.MethodPost)
	sec.HandleFunc("/tickets/{id:[0-9]+}", h.GetTicket).Methods(http.MethodGet)
	sec.HandleFunc("/tickets/{id:[0-9]+}", h.UpdateTicket).Methods(http.MethodPut)
	sec.HandleFunc("/tickets/{id:[0-9]+}", h.DeleteTicket).Methods(http.MethodDelete)

	sec.HandleFunc("/wikis", h.ListWikis).Methods(http.MethodGet)
	sec.HandleFunc("/wikis", h.CreateWiki).Methods(http.MethodPost)
	sec.HandleFunc("/wikis/{id:[0-9]+}", h.GetWiki).Methods(http.MethodGet)
	sec.HandleFunc("/wikis/{id:[0-9]+}", h.UpdateWiki).Methods(http.MethodPut)
	sec.HandleFunc("/wikis/{id:[0-9]+}", h.DeleteWiki).Methods(http.MethodDelete)

	sec.HandleFunc("/inventory", h.ListInventory).Methods(http.MethodGet)
	sec.HandleFunc("/inventory", h.CreateInventoryItem).Methods(http.MethodPost)
	sec.HandleFunc("/inventory/{id:[0-9]+}", h.GetInventoryItem).Methods(http.MethodGet)
	sec.HandleFunc("/inventory/{id:[0-9]+}", h.UpdateInventoryItem).Methods(http.MethodPut)
	sec.HandleFunc("/inventory/{id:[0-9]+}", h.DeleteInventoryItem).Methods(http.MethodDelete)

	sec.HandleFunc("/dashboard/stats", h.DashboardStats).Methods(http.MethodGet)
}
