package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody is the one error envelope every 4xx/5xx carries.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, details ...string) {
	body := errorBody{Error: message}
	if len(details) > 0 {
		body.Details = details[0]
	}
	respondJSON(w, status, body)
}
