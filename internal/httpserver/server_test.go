package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/feature"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/logger"
	"github.com/MrSnakeDoc/nitron/internal/store/memory"
)

var testNow = time.Date(2025, time.March, 4, 15, 0, 0, 0, time.UTC)

type testServer struct {
	handler http.Handler
	store   *memory.Store
	deps    deps.Deps
}

func newTestServer(t *testing.T, mutate func(*config.Config, *deps.Deps)) *testServer {
	t.Helper()

	clock := testNow.Add(-time.Hour)
	store := memory.New(time.UTC, func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	log := logger.NewNop()

	cfg := &config.Config{RateLimitBurst: 1000, RateLimitPerMin: 1000}
	d := deps.Deps{
		Logger:       log,
		StartTime:    testNow.Add(-90 * time.Minute),
		Version:      "test",
		TimeNow:      func() time.Time { return testNow },
		Location:     time.UTC,
		StoreBackend: config.StoreMemory,
		Store:        store,
		Bookmarks:    feature.NewBookmarks(store, log),
		History:      feature.NewHistory(store, log),
	}
	if mutate != nil {
		mutate(cfg, &d)
	}

	return &testServer{handler: NewRouter(cfg, log, d), store: store, deps: d}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestBookmarkRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{name: "add", method: http.MethodPost, target: "/api/bookmarks", body: `{"url":"https://a.example"}`, status: http.StatusCreated},
		{name: "add second", method: http.MethodPost, target: "/api/bookmarks", body: `{"url":"http://b.example"}`, status: http.StatusCreated},
		{name: "reject ftp", method: http.MethodPost, target: "/api/bookmarks", body: `{"url":"ftp://x"}`, status: http.StatusBadRequest},
		{name: "reject empty", method: http.MethodPost, target: "/api/bookmarks", body: `{"url":""}`, status: http.StatusBadRequest},
		{name: "reject malformed body", method: http.MethodPost, target: "/api/bookmarks", body: `not json`, status: http.StatusBadRequest},
		{name: "delete without url", method: http.MethodDelete, target: "/api/bookmarks", status: http.StatusBadRequest},
		{name: "delete missing", method: http.MethodDelete, target: "/api/bookmarks?url=https://missing.example", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Errorf("%s %s = %d, want %d (body %q)", tt.method, tt.target, rec.Code, tt.status, rec.Body.String())
			}
		})
	}

	rec := s.do(t, http.MethodGet, "/api/bookmarks", "")
	got := decode[[]string](t, rec)
	if len(got) != 2 || got[0] != "http://b.example" || got[1] != "https://a.example" {
		t.Errorf("GET /api/bookmarks = %v", got)
	}

	rec = s.do(t, http.MethodPost, "/api/bookmarks", `{"url":"ftp://x"}`)
	errBody := decode[map[string]string](t, rec)
	if errBody["url"] != "ftp://x" || !strings.Contains(errBody["error"], "must start with http") {
		t.Errorf("rejection body = %v", errBody)
	}

	s.do(t, http.MethodDelete, "/api/bookmarks?url=https://a.example", "")
	rec = s.do(t, http.MethodGet, "/api/bookmarks/count", "")
	if c := decode[map[string]int](t, rec); c["count"] != 1 {
		t.Errorf("count = %v, want 1", c)
	}
}

func TestHistoryRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	if rec := s.do(t, http.MethodGet, "/api/history/recent", ""); rec.Code != http.StatusNoContent {
		t.Errorf("recent on empty history = %d, want 204", rec.Code)
	}

	for _, body := range []string{`{"url":"https://a.example"}`, `{"url":""}`, `{"url":"https://b.example"}`} {
		if rec := s.do(t, http.MethodPost, "/api/history", body); rec.Code != http.StatusNoContent {
			t.Fatalf("POST /api/history %s = %d", body, rec.Code)
		}
	}

	rec := s.do(t, http.MethodGet, "/api/history/recent", "")
	if got := decode[map[string]string](t, rec); got["url"] != "https://b.example" {
		t.Errorf("recent = %v", got)
	}

	rec = s.do(t, http.MethodGet, "/api/history/by-day", "")
	byDay := decode[domain.HistoryByDay](t, rec)
	if urls, ok := byDay.Get("Tuesday, March 4, 2025"); !ok || len(urls) != 2 {
		t.Errorf("by-day = %+v", byDay)
	}

	rec = s.do(t, http.MethodGet, "/api/history?timestamps=true", "")
	entries := decode[[]domain.HistoryEntry](t, rec)
	if len(entries) != 2 || entries[0].VisitedAt.IsZero() {
		t.Errorf("history with timestamps = %+v", entries)
	}

	if rec := s.do(t, http.MethodPost, "/api/history/clear", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("clear = %d", rec.Code)
	}
	rec = s.do(t, http.MethodGet, "/api/history/count", "")
	if c := decode[map[string]int](t, rec); c["count"] != 0 {
		t.Errorf("count after clear = %v", c)
	}
}

func TestFeatureRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/features/bookmarks/disable", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("disable = %d", rec.Code)
	}
	if got := decode[map[string]any](t, rec); got["status"] != "Bookmark Manager [DISABLED]" {
		t.Errorf("disable response = %v", got)
	}

	rec = s.do(t, http.MethodPost, "/api/bookmarks", `{"url":"https://a.example"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Bookmark Manager is disabled") {
		t.Errorf("add while disabled = %d %q", rec.Code, rec.Body.String())
	}

	tests := []struct {
		target string
		status int
	}{
		{target: "/api/features/bookmarks/initialize", status: http.StatusOK},
		{target: "/api/features/history/disable", status: http.StatusOK},
		{target: "/api/features/themes/enable", status: http.StatusNotFound},
		{target: "/api/features/history/explode", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := s.do(t, http.MethodPost, tt.target, ""); rec.Code != tt.status {
			t.Errorf("POST %s = %d, want %d", tt.target, rec.Code, tt.status)
		}
	}

	rec = s.do(t, http.MethodGet, "/api/features", "")
	features := decode[[]map[string]any](t, rec)
	if len(features) != 2 || features[0]["enabled"] != true || features[1]["enabled"] != false {
		t.Errorf("features = %v", features)
	}
}

func TestSummaryRoute(t *testing.T) {
	s := newTestServer(t, nil)
	for _, u := range []string{"https://a.example/1", "https://a.example/2", "https://b.example/"} {
		s.do(t, http.MethodPost, "/api/history", `{"url":"`+u+`"}`)
	}

	rec := s.do(t, http.MethodGet, "/api/summary?format=text", "")
	body := rec.Body.String()
	for _, want := range []string{"=== Day Summary ===", "Sites Visited: 2", "Browsing Time: 1h 30m", "1. a.example (2 visits)"} {
		if !strings.Contains(body, want) {
			t.Errorf("summary text missing %q:\n%s", want, body)
		}
	}

	rec = s.do(t, http.MethodGet, "/api/summary", "")
	if got := decode[map[string]any](t, rec); got["sites_visited"] != float64(2) {
		t.Errorf("summary json = %v", got)
	}
}

func TestStoreUnavailable(t *testing.T) {
	s := newTestServer(t, nil)
	_ = s.store.Close()

	if rec := s.do(t, http.MethodGet, "/api/bookmarks", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /api/bookmarks with closed store = %d, want 503", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz with closed store = %d, want 503", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/infra", "")
	if got := decode[map[string]any](t, rec); got["status"] != "critical" {
		t.Errorf("infra status = %v", got["status"])
	}
}

func TestAccessRestrictions(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config, d *deps.Deps) {
		d.AllowedHosts = []string{"nitron.domain.ext"}
		d.AllowedCIDRS = []string{"10.0.0.0/8"}
	})

	// httptest requests come from 192.0.2.1 with Host example.com.
	if rec := s.do(t, http.MethodGet, "/api/bookmarks", ""); rec.Code != http.StatusForbidden {
		t.Errorf("GET /api/bookmarks from outside = %d, want 403", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
	req.Host = "nitron.domain.ext"
	req.RemoteAddr = "10.1.2.3:5555"
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/bookmarks from allowed client = %d, want 200", rec.Code)
	}
}

func TestWriteRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config, d *deps.Deps) {
		cfg.RateLimitBurst = 2
		cfg.RateLimitPerMin = 1
	})

	for i := 0; i < 2; i++ {
		if rec := s.do(t, http.MethodPost, "/api/history", `{"url":"https://a.example"}`); rec.Code != http.StatusNoContent {
			t.Fatalf("write %d = %d", i, rec.Code)
		}
	}
	rec := s.do(t, http.MethodPost, "/api/bookmarks", `{"url":"https://a.example"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("third write = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	if rec := s.do(t, http.MethodGet, "/api/history", ""); rec.Code != http.StatusOK {
		t.Errorf("reads should not be rate limited, got %d", rec.Code)
	}
}

func TestImportRoute(t *testing.T) {
	s := newTestServer(t, nil)
	if rec := s.do(t, http.MethodPost, "/import", ""); rec.Code != http.StatusNotFound {
		t.Errorf("POST /import without import configured = %d, want 404", rec.Code)
	}

	trigger := make(chan struct{}, 1)
	s = newTestServer(t, func(cfg *config.Config, d *deps.Deps) {
		d.ImportTrigger = trigger
	})
	if rec := s.do(t, http.MethodPost, "/import", ""); rec.Code != http.StatusAccepted {
		t.Errorf("first POST /import = %d, want 202", rec.Code)
	}
	if rec := s.do(t, http.MethodPost, "/import", ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second POST /import = %d, want 429", rec.Code)
	}
	<-trigger
}
