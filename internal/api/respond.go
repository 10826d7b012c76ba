package api

import (
	"encoding/json"
	"net/http"
)

// envelope is the response shape for every endpoint: a success flag, a
// human-readable message, and either data or an error detail.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, envelope{Success: false, Message: message, Error: detail})
}
