package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts all routes. The health endpoint stays outside the auth
// group; everything under /jobs and /codes requires the shared secret when
// one is configured.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(CORS(h.cfg.AllowedOrigins))

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(Auth(h.cfg.APISecret))

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/convert", h.ConvertSubmit)
			r.Get("/convert/download/{filename}", h.ConvertDownload)
			r.Get("/convert/{id}", h.ConvertStatus)

			r.Post("/fetch/info", h.FetchInfo)
			r.Post("/fetch/download", h.FetchDownload)
			r.Get("/fetch/file/{filename}", h.FetchFile)
			r.Get("/fetch/{id}", h.FetchStatus)
		})

		r.Post("/codes/generate", h.GenerateCode)
	})

	return r
}
