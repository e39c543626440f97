package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// NewRouter builds the read API router.
func NewRouter(videos *VideoHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(httprate.LimitAll(200, time.Minute))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, envelope{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/videos", videos.HandleListVideos)
	})

	return r
}
