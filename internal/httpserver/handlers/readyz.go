package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Store string `json:"store"`
}

// Readyz reports whether the record store answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		ready := true
		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			status = http.StatusServiceUnavailable
			ready = false
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready: ready,
			Store: d.StoreBackend,
		})
	}
}
