package main

import (
	"net/http"

	"github.com/cmlowerence/Learn-Better/internal/api"
	apiMiddleware "github.com/cmlowerence/Learn-Better/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	generateHandler := api.NewGenerateHandler(app.generator, app.retryAfter)

	r.Route("/api", func(r chi.Router) {
		if app.validator != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.validator).Authenticate)
		}
		r.Post("/generate", generateHandler.Generate)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}
