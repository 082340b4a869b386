package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/preptalk-ai/preptalk-lambda/internal/interview"
	"github.com/preptalk-ai/preptalk-lambda/internal/middlewares"
)

type RouterConfig struct {
	InterviewHandler *interview.Handler
	AllowedOrigin    string
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(middlewares.Cors(cfg.AllowedOrigin))

	r.Mount("/", interview.Routes(cfg.InterviewHandler))

	return r
}
