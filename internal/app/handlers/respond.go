package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse — единый формат ошибки для клиента.
// Детали внутренних ошибок в ответ не попадают, только в лог.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}
