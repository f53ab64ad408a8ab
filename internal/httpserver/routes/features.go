package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/handlers"
)

func init() { Register(registerFeatures) }

func registerFeatures(r chi.Router, d deps.Deps) {
	r.With(guarded(d)...).Get("/api/features", handlers.ListFeatures(d))
	r.With(writes(d)...).Post("/api/features/{name}/{action}", handlers.SetFeature(d))
	r.With(guarded(d)...).Get("/api/summary", handlers.Summary(d))
}
