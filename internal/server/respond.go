package server

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 20

// Client-facing error messages.
const (
	msgInvalidRequest     = "Invalid request data"
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Unauthorized"
	msgInternal           = "Internal server error"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Success: false, Error: msg})
}

// decodeBody reads a single JSON object from r into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
