package interview

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/start", h.Start)
	r.Post("/transcribe", h.Transcribe)
	r.Get("/evaluate", h.Evaluate)

	return r
}
