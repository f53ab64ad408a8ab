package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	URL   string `json:"url,omitempty"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type countResponse struct {
	Count int `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes: invalid urls are the
// caller's fault, store errors mean the backend is down.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var invalid *domain.InvalidURLError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: invalid.Error(), URL: invalid.URL})
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Warn("store unavailable", logger.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		log.Error("request failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeURL reads a {"url": "..."} body.
func decodeURL(w http.ResponseWriter, r *http.Request) (string, error) {
	var req urlRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(&req); err != nil {
		return "", err
	}
	return req.URL, nil
}

// queryURL returns the url query parameter; ok is false when it is absent.
func queryURL(r *http.Request) (string, bool) {
	q := r.URL.Query()
	if !q.Has("url") {
		return "", false
	}
	return q.Get("url"), true
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
