package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.With(guarded(d)...).Get("/", handlers.ListBookmarks(d))
		r.With(guarded(d)...).Get("/count", handlers.CountBookmarks(d))
		r.With(writes(d)...).Post("/", handlers.AddBookmark(d))
		r.With(writes(d)...).Delete("/", handlers.DeleteBookmark(d))
	})
}
