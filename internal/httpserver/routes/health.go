package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/mw"
)

func init() { Register(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Get("/readyz", handlers.Readyz(d))
	r.With(guarded(d)...).Get("/infra", handlers.Infra(d))
}
