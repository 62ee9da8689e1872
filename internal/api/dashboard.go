package api

import (
	"net/http"

	"octopus/internal/models"
	"octopus/internal/repo"
)

type statsResponse struct {
	Totals          *repo.Totals                  `json:"totals"`
	TicketsByStatus map[models.TicketStatus]int64 `json:"tickets_by_status"`
}

// DashboardStats — агрегаты только для чтения; достаточно валидного токена.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	totals, err := h.stats.Totals(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	byStatus, err := h.stats.TicketsByStatus(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Totals: totals, TicketsByStatus: byStatus})
}
