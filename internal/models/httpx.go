package models

import (
	"encoding/json"
	"net/http"
)

// APIError — тело ответа об ошибке; формат совместим с фронтендом
// ({"detail": "сообщение"}).
type APIError struct {
	Detail string `json:"detail"`
}

func WriteError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIError{Detail: detail})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
