package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mediaforge/internal/codes"
	"mediaforge/internal/models"
)

// GenerateCode handles POST /codes/generate. Fully synchronous; no job
// record is created.
func (h *Handler) GenerateCode(w http.ResponseWriter, r *http.Request) {
	var req models.QRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, "Invalid JSON body.")
		return
	}

	dataURL, err := codes.Generate(req.Content, codes.Options{
		Size:       req.Size,
		DarkColor:  req.DarkColor,
		LightColor: req.LightColor,
	})
	if err != nil {
		if errors.Is(err, codes.ErrEmptyContent) || errors.Is(err, codes.ErrContentTooLong) || errors.Is(err, codes.ErrBadColor) {
			WriteError(w, http.StatusBadRequest, ErrCategoryValidation, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, ErrCategoryInternal, "QR generation failed.")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"dataUrl": dataURL})
}

// Health handles GET /health. Unauthenticated liveness check.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"uptime":    int(time.Since(h.started).Seconds()),
	})
}
