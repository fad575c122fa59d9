package core

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiplan/internal/config"
	"archiplan/internal/types"
)

type recordedRequest struct {
	method, endpoint, status string
}

type mockMetricsCollector struct {
	mu    sync.Mutex
	calls []recordedRequest
}

func (m *mockMetricsCollector) RecordRequest(method, endpoint, status string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, recordedRequest{method, endpoint, status})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, logger *slog.Logger, routes func(chi.Router)) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Security.CorsAllowedOrigins = []string{"https://app.example"}
	cfg.Build.Version = "1.0.0"
	s, err := NewServer(cfg, logger)
	require.NoError(t, err)
	if routes != nil {
		s.V1RouteRegistrars = append(s.V1RouteRegistrars, routes)
	}
	return s
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer(nil, discardLogger())
	assert.Error(t, err)
	_, err = NewServer(&config.Config{}, nil)
	assert.Error(t, err)
}

func TestMountRoutes_V1AndHeaders(t *testing.T) {
	s := newTestServer(t, discardLogger(), func(r chi.Router) {
		r.Get("/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
			JSON(w, r, http.StatusOK, APIResponse{Data: map[string]string{
				"id":         chi.URLParam(r, "id"),
				"request_id": types.GetRequestID(r.Context()),
				"trace_id":   types.GetTraceID(r.Context()),
			}})
		})
	})
	s.MountRoutes()

	req := httptest.NewRequest("GET", "/v1/projects/prj_1", nil)
	req.Header.Set("X-Request-Id", "abc")
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"prj_1","request_id":"abc","trace_id":"abc"}}`, rec.Body.String())
	assert.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMountRoutes_GeneratesRequestID(t *testing.T) {
	s := newTestServer(t, discardLogger(), nil)
	s.MountRoutes()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Len(t, rec.Header().Get("X-Request-Id"), 36)
}

func TestMountRoutes_NotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, discardLogger(), func(r chi.Router) {
		r.Get("/projects", func(w http.ResponseWriter, r *http.Request) {})
	})
	s.MountRoutes()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(types.ErrCodeNotFoundRoute), readError(t, rec).Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("PUT", "/v1/projects", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, string(types.ErrCodeMethodNotAllowed), readError(t, rec).Code)
}

func TestRecoverer(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(t, slog.New(slog.NewTextHandler(&logs, nil)), func(r chi.Router) {
		r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("kaboom") })
	})
	s.MountRoutes()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, string(types.ErrCodeInternalUnexpected), readError(t, rec).Code)
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "kaboom")
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	mc := &mockMetricsCollector{}
	s := newTestServer(t, discardLogger(), func(r chi.Router) {
		r.Post("/projects/{id}/designs/2d", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
	})
	s.Metrics = mc
	s.MountRoutes()

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/v1/projects/prj_9/designs/2d", nil))
	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))

	require.Len(t, mc.calls, 2)
	assert.Equal(t, recordedRequest{"POST", "/v1/projects/{id}/designs/2d", "201"}, mc.calls[0])
	assert.Equal(t, recordedRequest{"GET", unmatchedRoute, "404"}, mc.calls[1])
}

func TestRequestLogger_RedactsAndLevels(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	h := RequestLogger(logger, []string{"authorization"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest("GET", "/v1/projects", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("User-Agent", "tests")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := logs.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"status":400`)
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "secret-token")
	assert.Contains(t, out, `"User-Agent":"tests"`)
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/v1/projects", nil)
		req.Header.Set("Origin", "https://app.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		NewCORSMiddleware([]string{"https://app.example"})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/projects", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		NewCORSMiddleware([]string{"https://app.example"})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/projects", nil)
		rec := httptest.NewRecorder()
		NewCORSMiddleware([]string{"*"})(next).ServeHTTP(rec, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestContextTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	h := ContextTimeoutMiddleware(time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, _ = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestRequestTimeoutFromConfig(t *testing.T) {
	s := newTestServer(t, discardLogger(), nil)
	assert.Equal(t, defaultRequestTimeout, s.requestTimeout())
	s.Config.Server.RequestTimeout = 3 * time.Second
	assert.Equal(t, 3*time.Second, s.requestTimeout())
}
