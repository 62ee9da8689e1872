package health

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"octopus/internal/models"
)

// RegisterRoutes — liveness + readiness (проверка БД).
// /health отвечает всегда и без авторизации.
func RegisterRoutes(r *mux.Router, db *gorm.DB) {
	r.HandleFunc("/health", liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		sqlDB, err := db.DB()
		if err != nil {
			http.Error(w, "db handle error", http.StatusServiceUnavailable)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)
}

func liveness(w http.ResponseWriter, _ *http.Request) {
	models.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
