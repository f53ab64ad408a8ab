package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/logger"
)

// Import triggers a manual bookmark import
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ImportTrigger == nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "bookmark import is not configured"})
			return
		}

		select {
		case d.ImportTrigger <- struct{}{}:
			d.Logger.Info("manual bookmark import triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Import triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		default:
			d.Logger.Warn("bookmark import already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("⏳ Import already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
