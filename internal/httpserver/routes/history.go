package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/handlers"
)

func init() { Register(registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) {
	r.Route("/api/history", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(guarded(d)...)
			r.Get("/", handlers.ListHistory(d))
			r.Get("/count", handlers.CountHistory(d))
			r.Get("/recent", handlers.RecentHistory(d))
			r.Get("/by-day", handlers.HistoryByDay(d))
		})
		r.Group(func(r chi.Router) {
			r.Use(writes(d)...)
			r.Post("/", handlers.AddHistory(d))
			r.Delete("/", handlers.DeleteHistory(d))
			r.Post("/clear", handlers.ClearHistory(d))
		})
	})
}
