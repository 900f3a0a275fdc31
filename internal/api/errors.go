package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorResponse is the uniform error body for every endpoint.
//
//	{"error": "validation", "message": "kind is required"}
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Error categories used in the "error" field.
const (
	ErrCategoryValidation = "validation"
	ErrCategoryAuth       = "unauthorized"
	ErrCategoryNotFound   = "not_found"
	ErrCategoryInternal   = "internal"
)

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response failed")
	}
}

// WriteError writes the standard error envelope and logs server-side faults.
func WriteError(w http.ResponseWriter, status int, category, message string) {
	if status >= 500 {
		log.Error().Int("status", status).Str("category", category).Str("message", message).
			Msg("request failed")
	}
	WriteJSON(w, status, ErrorResponse{Error: category, Message: message})
}
