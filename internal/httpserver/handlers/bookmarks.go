package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
)

func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := d.Bookmarks.GetBookmarks(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, urls)
	}
}

func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := decodeURL(w, r)
		if err != nil {
			badRequest(w, "body must be {\"url\": \"...\"}")
			return
		}
		if err := d.Bookmarks.AddBookmark(r.Context(), url); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, urlRequest{URL: url})
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, ok := queryURL(r)
		if !ok {
			badRequest(w, "missing url query parameter")
			return
		}
		if err := d.Bookmarks.DeleteBookmark(r.Context(), url); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CountBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := d.Bookmarks.GetBookmarkCount(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{Count: n})
	}
}
