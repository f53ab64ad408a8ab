package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/handlers"
)

func init() { Register(registerImport) }

func registerImport(r chi.Router, d deps.Deps) {
	r.With(writes(d)...).Post("/import", handlers.Import(d))
}
