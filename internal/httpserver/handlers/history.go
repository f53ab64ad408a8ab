package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
)

// ListHistory returns visited URLs newest first, or entries with visit times
// when ?timestamps=true.
func ListHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withTime, _ := strconv.ParseBool(r.URL.Query().Get("timestamps"))
		if withTime {
			entries, err := d.History.ListHistory(r.Context())
			if err != nil {
				writeError(w, d.Logger, err)
				return
			}
			writeJSON(w, http.StatusOK, entries)
			return
		}

		urls, err := d.History.GetHistory(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, urls)
	}
}

// AddHistory records a visit. Blank URLs and a disabled feature are accepted
// and ignored.
func AddHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := decodeURL(w, r)
		if err != nil {
			badRequest(w, "body must be {\"url\": \"...\"}")
			return
		}
		if err := d.History.AddToHistory(r.Context(), url); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, ok := queryURL(r)
		if !ok {
			badRequest(w, "missing url query parameter")
			return
		}
		if err := d.History.DeleteHistoryEntry(r.Context(), url); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ClearHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.History.ClearAllHistory(r.Context()); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CountHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := d.History.GetHistoryCount(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{Count: n})
	}
}

// RecentHistory returns the newest visit, or 204 when there is none.
func RecentHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, ok, err := d.History.GetMostRecentURL(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, urlRequest{URL: url})
	}
}

func HistoryByDay(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		byDay, err := d.History.GetHistoryByDay(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, byDay)
	}
}
