package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/summary"
)

// Summary reports today's browsing since the server started. ?format=text
// returns the plain-text rendering.
func Summary(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := summary.Build(r.Context(), d.History, d.StartTime, d.Now(), d.Location)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		if r.URL.Query().Get("format") == "text" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			_, _ = w.Write([]byte(report.String()))
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}
