package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Backend string `json:"backend,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
	Count   *int   `json:"count,omitempty"`
	File    string `json:"file,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		store := checkStore(ctx, d)

		components := map[string]componentStatus{
			"store":     store,
			"bookmarks": featureComponent(d.Bookmarks.Enabled(), func() (int, error) { return d.Bookmarks.GetBookmarkCount(ctx) }, store.OK),
			"history":   featureComponent(d.History.Enabled(), func() (int, error) { return d.History.GetHistoryCount(ctx) }, store.OK),
			"import":    importComponent(d),
		}

		response := infraResponse{
			Status:     determineStatus(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// determineStatus is "critical" without a store, "degraded" when a feature
// is switched off, "ok" otherwise.
func determineStatus(components map[string]componentStatus) string {
	if store, exists := components["store"]; exists && !store.OK {
		return "critical"
	}
	for _, name := range []string{"bookmarks", "history"} {
		if c, exists := components[name]; exists && c.Enabled != nil && !*c.Enabled {
			return "degraded"
		}
	}
	return "ok"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: false, Backend: d.StoreBackend, Error: "store not initialized"}
	}
	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{OK: false, Backend: d.StoreBackend, Error: err.Error()}
	}
	return componentStatus{OK: true, Backend: d.StoreBackend}
}

func featureComponent(enabled bool, count func() (int, error), storeOK bool) componentStatus {
	c := componentStatus{OK: storeOK, Enabled: &enabled}
	if !storeOK {
		return c
	}
	n, err := count()
	if err != nil {
		c.OK = false
		c.Error = err.Error()
		return c
	}
	c.Count = &n
	return c
}

func importComponent(d deps.Deps) componentStatus {
	enabled := d.ImportTrigger != nil
	return componentStatus{OK: true, Enabled: &enabled, File: d.ImportFile}
}
