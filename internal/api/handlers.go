package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"mediaforge/internal/config"
	"mediaforge/internal/fetch"
	"mediaforge/internal/jobs"
	"mediaforge/internal/models"
	"mediaforge/internal/store"
)

// Handler carries the wired services for all endpoints.
type Handler struct {
	dispatcher *jobs.Dispatcher
	registry   *jobs.Registry
	store      *store.Store
	fetcher    *fetch.Engine
	cfg        *config.Config
	version    string
	started    time.Time
}

// NewHandler wires the HTTP surface.
func NewHandler(d *jobs.Dispatcher, reg *jobs.Registry, st *store.Store, f *fetch.Engine, cfg *config.Config, version string) *Handler {
	return &Handler{
		dispatcher: d,
		registry:   reg,
		store:      st,
		fetcher:    f,
		cfg:        cfg,
		version:    version,
		started:    time.Now(),
	}
}

// ConvertSubmit handles POST /jobs/convert: multipart file + kind. The input
// is staged synchronously, then the strategy runs out-of-band; the response
// returns immediately with the job id.
func (h *Handler) ConvertSubmit(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.cfg.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, "Upload is missing or exceeds the size limit.")
		return
	}

	kind := models.JobKind(r.FormValue("kind"))
	if kind == "" {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, "kind is required.")
		return
	}
	if strings.HasPrefix(string(kind), "fetch-") {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, "Download kinds are submitted via /jobs/fetch/download.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, "file is required.")
		return
	}
	defer file.Close()

	input := h.store.Stage(filepath.Ext(header.Filename))
	dst, err := os.Create(input)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, ErrCategoryInternal, "Staging the upload failed.")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		h.store.Delete(input)
		WriteError(w, http.StatusInternalServerError, ErrCategoryInternal, "Staging the upload failed.")
		return
	}
	dst.Close()

	job, err := h.dispatcher.Submit(kind, input, header.Filename, "", "")
	if err != nil {
		h.store.Delete(input)
		WriteError(w, http.StatusBadRequest, ErrCategoryValidation, err.Error())
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]any{
		"id":               job.ID,
		"status":           job.Status,
		"progress":         job.Progress,
		"originalFileName": job.OriginalName,
	})
}

// ConvertStatus handles GET /jobs/convert/{id}.
func (h *Handler) ConvertStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := h.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, ErrCategoryNotFound, "Unknown job id.")
		return
	}
	WriteJSON(w, http.StatusOK, projection(job, "/jobs/convert/download/", ""))
}

// ConvertDownload handles GET /jobs/convert/download/{filename}. A file the
// reaper already removed surfaces here as a plain 404.
func (h *Handler) ConvertDownload(w http.ResponseWriter, r *http.Request) {
	h.serveArtifact(w, r)
}

// FetchFile handles GET /jobs/fetch/file/{filename}.
func (h *Handler) FetchFile(w http.ResponseWriter, r *http.Request) {
	h.serveArtifact(w, r)
}

func (h *Handler) serveArtifact(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	path, ok := h.store.Resolve(filename)
	if !ok {
		WriteError(w, http.StatusNotFound, ErrCategoryNotFound, "File not found or already cleaned up.")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}

// projection shapes a job record for status responses. Download URLs appear
// only once the job is completed and reference the given endpoint family.
func projection(job models.Job, downloadBase, audioBase string) map[string]any {
	resp := map[string]any{
		"id":       job.ID,
		"status":   job.Status,
		"progress": job.Progress,
	}
	if job.OriginalName != "" {
		resp["originalFileName"] = job.OriginalName
	}
	if job.Status == models.StatusCompleted && job.OutputName != "" {
		resp["convertedFileName"] = job.OutputName
		resp["downloadUrl"] = downloadBase + job.OutputName
		if audioBase != "" && job.AudioName != "" {
			resp["audioDownloadUrl"] = audioBase + job.AudioName
		}
	}
	if job.Status == models.StatusError {
		resp["error"] = job.Error
	}
	return resp
}
