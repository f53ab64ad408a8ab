package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/nitron/internal/feature"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
)

type featureStatus struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Status  string `json:"status"`
}

type namedToggle struct {
	id string
	t  *feature.Toggle
}

// toggles lists the features by URL id, in display order.
func toggles(d deps.Deps) []namedToggle {
	return []namedToggle{
		{id: "bookmarks", t: &d.Bookmarks.Toggle},
		{id: "history", t: &d.History.Toggle},
	}
}

func statusOf(id string, t *feature.Toggle) featureStatus {
	return featureStatus{ID: id, Name: t.Name(), Enabled: t.Enabled(), Status: t.String()}
}

func ListFeatures(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]featureStatus, 0, 2)
		for _, f := range toggles(d) {
			out = append(out, statusOf(f.id, f.t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// SetFeature handles /api/features/{name}/{action} where action is enable,
// disable or initialize.
func SetFeature(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "name")
		action := chi.URLParam(r, "action")

		var target *feature.Toggle
		for _, f := range toggles(d) {
			if f.id == id {
				target = f.t
			}
		}
		if target == nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown feature " + id})
			return
		}

		switch action {
		case "enable":
			target.Enable()
		case "disable":
			target.Disable()
		case "initialize":
			target.Initialize()
		default:
			badRequest(w, "unknown action "+action)
			return
		}
		writeJSON(w, http.StatusOK, statusOf(id, target))
	}
}
