package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediaforge/internal/models"
)

// formatKinds maps the public "format" field onto fetch job kinds.
var formatKinds = map[string]models.JobKind{
	"audio":       models.KindFetchAudio,
	"video-only":  models.KindFetchVideoOnly,
	"video-audio": models.KindFetchVideoAudio,
	"separate":    models.KindFetchSeparate,
}

// FetchInfo handles POST /jobs/fetch/info: resolve metadata without a job.
func (h *Handler) FetchInfo(w http.ResponseWriter, r *http.Request) {
	var req models.InfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, "url is required.")
		return
	}

	info, err := h.fetcher.Info(r.Context(), req.URL)
	if err != nil {
		WriteError(w, http.StatusNotFound, ErrCategoryNotFound, "Could not resolve video information.")
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

// FetchDownload handles POST /jobs/fetch/download: start a download job.
func (h *Handler) FetchDownload(w http.ResponseWriter, r *http.Request) {
	var req models.FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, "Invalid JSON body.")
		return
	}
	if req.URL == "" {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, "url is required.")
		return
	}
	kind, ok := formatKinds[req.Format]
	if !ok {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, "format must be one of audio, video-only, video-audio, separate.")
		return
	}

	job, err := h.dispatcher.Submit(kind, "", "", req.URL, req.Quality)
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, err.Error())
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]any{
		"id":       job.ID,
		"status":   job.Status,
		"progress": job.Progress,
	})
}

// FetchStatus handles GET /jobs/fetch/{id}, including the secondary download
// URL for the separate-tracks kind.
func (h *Handler) FetchStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := h.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, ErrCategoryNotFound, "Unknown job id.")
		return
	}
	WriteJSON(w, http.StatusOK, projection(job, "/jobs/fetch/file/", "/jobs/fetch/file/"))
}
