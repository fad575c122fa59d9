package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProbe struct {
	name  string
	err   error
	delay time.Duration
	panic bool
}

func (p stubProbe) Name() string { return p.name }

func (p stubProbe) Check(ctx context.Context) error {
	if p.panic {
		panic("probe exploded")
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			// Simulate a probe that ignores cancellation until it finishes.
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()
		}
	}
	return p.err
}

func runHealth(t *testing.T, probes ...HealthProbe) (int, healthResponse) {
	t.Helper()
	s := newTestServer(t, discardLogger(), nil)
	s.HealthProbes = probes
	s.MountRoutes()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestHandleHealth_NoProbes(t *testing.T) {
	code, resp := runHealth(t)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Empty(t, resp.Components)
}

func TestHandleHealth_AllHealthy(t *testing.T) {
	code, resp := runHealth(t, stubProbe{name: "database"}, stubProbe{name: "queue"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]componentStatus{
		"database": {Status: "healthy"},
		"queue":    {Status: "healthy"},
	}, resp.Components)
}

func TestHandleHealth_Failures(t *testing.T) {
	code, resp := runHealth(t,
		stubProbe{name: "database", err: errors.New("connection refused")},
		stubProbe{name: "queue", panic: true},
		stubProbe{name: "cache"},
	)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, componentStatus{Status: "unhealthy", Message: "connection refused"}, resp.Components["database"])
	assert.Contains(t, resp.Components["queue"].Message, "probe exploded")
	assert.Equal(t, "healthy", resp.Components["cache"].Status)
}

func TestHandleHealth_Timeout(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the health deadline")
	}
	code, resp := runHealth(t, stubProbe{name: "database", delay: time.Minute})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "health check timed out", resp.Components["database"].Message)
}
