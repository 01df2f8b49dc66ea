package server

import (
	"encoding/json"
	"net/http"
)

// APIError is the standard error response shape. Code is a stable
// machine-readable tag; Error carries the human-readable text.
type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, APIError{Error: msg, Code: code})
}
