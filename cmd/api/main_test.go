package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiplan/internal/config"
	"archiplan/internal/core"
	"archiplan/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "local",
		Service:     "archiplan",
		LogLevel:    "error",
		Server:      config.ServerConfig{Port: "8080", RequestTimeout: 5 * time.Second},
		Security:    config.SecurityConfig{CorsAllowedOrigins: []string{"*"}},
		Synthesis:   config.SynthesisConfig{DefaultRegion: "north_america", DefaultCurrency: "USD"},
		Build:       config.BuildInfo{Version: "test"},
	}
}

func buildTestServer(t *testing.T) *core.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, cleanup, err := buildServer(context.Background(), testConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return srv
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		level   string
		enabled slog.Level
		blocked slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"verbose", slog.LevelInfo, slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := newLogger(tt.level)
			assert.True(t, l.Enabled(ctx, tt.enabled))
			assert.False(t, l.Enabled(ctx, tt.blocked))
		})
	}
}

func TestIsLambdaEnvironment(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")
	assert.True(t, isLambdaEnvironment(), "presence alone marks the runtime")
}

func TestBuildServer_MemoryStoreEndToEnd(t *testing.T) {
	h := buildTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/projects",
		`{"name":"Lake House","type":"residential","surface_area":120}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data types.Project `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Data.ID
	require.NotEmpty(t, id)

	rec = do(t, h, http.MethodPost, "/v1/projects/"+id+"/designs/structural", "")
	assert.Equal(t, http.StatusConflict, rec.Code, "structural needs a floor plan first")

	rec = do(t, h, http.MethodPost, "/v1/projects/"+id+"/designs/2d", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/projects/"+id+"/designs/structural", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/projects/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched struct {
		Data types.Project `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, types.StatusStructuralDesignComplete, fetched.Data.Status)
	assert.NotNil(t, fetched.Data.Designs.Design2D)
	assert.NotNil(t, fetched.Data.Designs.Structural)
	assert.Nil(t, fetched.Data.Designs.MEP)

	rec = do(t, h, http.MethodPost, "/v1/projects/"+id+"/pipeline", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code, "no queue configured")
}

func TestGatewayHandler(t *testing.T) {
	var seen *http.Request
	var seenBody string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		b, _ := io.ReadAll(r.Body)
		seenBody = string(b)
		w.Header().Add("X-Multi", "a")
		w.Header().Add("X-Multi", "b")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	ev := events.APIGatewayV2HTTPRequest{
		RawPath:         "/v1/projects",
		RawQueryString:  "limit=5",
		Headers:         map[string]string{"content-type": "application/json"},
		Cookies:         []string{"a=1", "b=2"},
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"name":"x"}`)),
		IsBase64Encoded: true,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RequestID:  "gw-req-1",
			DomainName: "api.example",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:   http.MethodPost,
				SourceIP: "203.0.113.9",
			},
		},
	}

	resp, err := newGatewayHandler(h)(context.Background(), ev)
	require.NoError(t, err)

	require.NotNil(t, seen)
	assert.Equal(t, http.MethodPost, seen.Method)
	assert.Equal(t, "/v1/projects", seen.URL.Path)
	assert.Equal(t, "5", seen.URL.Query().Get("limit"))
	assert.Equal(t, "application/json", seen.Header.Get("Content-Type"))
	assert.Equal(t, "a=1; b=2", seen.Header.Get("Cookie"))
	assert.Equal(t, "gw-req-1", seen.Header.Get("X-Request-Id"))
	assert.Equal(t, "api.example", seen.Host)
	assert.Equal(t, "203.0.113.9", seen.RemoteAddr)
	assert.Equal(t, `{"name":"x"}`, seenBody)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "a,b", resp.Headers["X-Multi"])
	assert.Equal(t, `{"ok":true}`, resp.Body)
}

func TestGatewayHandler_RoutesThroughServer(t *testing.T) {
	handler := newGatewayHandler(buildTestServer(t).Handler())

	resp, err := handler(context.Background(), events.APIGatewayV2HTTPRequest{
		RawPath: "/v1/nowhere",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: http.MethodGet},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Body, string(types.ErrCodeNotFoundRoute))
	assert.NotEmpty(t, resp.Headers["X-Request-Id"])
}

func TestGatewayHandler_BadBase64(t *testing.T) {
	handler := newGatewayHandler(http.NotFoundHandler())
	_, err := handler(context.Background(), events.APIGatewayV2HTTPRequest{
		Body:            "%%%",
		IsBase64Encoded: true,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: http.MethodPost},
		},
	})
	assert.Error(t, err)
}
