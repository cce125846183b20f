package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/alexiusacademia/gobeam/internal/server"
)

const centerLoad = `{"name": "B1", "length": 10, "ei": 200000, "points": [{"location": 5, "magnitude": 10}]}`

func newTestServer() *server.Server {
	cfg := config.Default()
	cfg.Samples = 101
	return server.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, s *server.Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	w := do(t, newTestServer(), "GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get(server.RequestIDHeader))
}

func TestInfoEndpoint(t *testing.T) {
	t.Parallel()

	w := do(t, newTestServer(), "GET", "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 101, body["samples"])
	assert.Len(t, body["types"], 5)
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Parallel()

	w := do(t, newTestServer(), "POST", "/analyze", centerLoad)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "B1", body["name"])
	assert.NotEmpty(t, body["id"])
	assert.Len(t, body["x"], 101)
	assert.Len(t, body["moment"], 101)

	reactions := body["reactions"].(map[string]any)
	assert.InDelta(t, 5.0, reactions["ra"], 1e-9)
	assert.InDelta(t, 5.0, reactions["rb"], 1e-9)

	peaks := body["peaks"].(map[string]any)
	maxMoment := peaks["max_moment"].(map[string]any)
	assert.InDelta(t, 25.0, maxMoment["value"], 1e-9)
	assert.InDelta(t, 5.0, maxMoment["location"], 1e-9)
}

func TestAnalyzeDecimation(t *testing.T) {
	t.Parallel()

	w := do(t, newTestServer(), "POST", "/analyze?samples=1001&points=11", centerLoad)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	x := body["x"].([]any)
	require.Len(t, x, 11)
	assert.InDelta(t, 0.0, x[0], 1e-12)
	assert.InDelta(t, 10.0, x[10], 1e-12)
	assert.Len(t, body["deflection_mm"], 11)
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		body   string
		status int
		kind   string
	}{
		{"bad json", "/analyze", `{"length": `, http.StatusBadRequest, ""},
		{"unknown field", "/analyze", `{"length": 5, "ei": 1, "span": 3}`, http.StatusBadRequest, ""},
		{"bad samples", "/analyze?samples=1", centerLoad, http.StatusBadRequest, ""},
		{"bad points", "/analyze?points=-3", centerLoad, http.StatusBadRequest, ""},
		{"zero length", "/analyze", `{"length": 0, "ei": 1}`, http.StatusUnprocessableEntity, "invalid_geometry"},
		{"load off span", "/analyze", `{"length": 4, "ei": 1, "points": [{"location": 5, "magnitude": 1}]}`, http.StatusUnprocessableEntity, "invalid_geometry"},
		{"no rigidity", "/analyze", `{"length": 4}`, http.StatusUnprocessableEntity, "invalid_rigidity"},
		{"unknown type", "/analyze", `{"length": 4, "ei": 1, "type": "arch"}`, http.StatusUnprocessableEntity, "invalid_input"},
		{"deflection overflows", "/analyze", `{"length": 10, "ei": 1e-300, "points": [{"location": 5, "magnitude": 1e10}]}`, http.StatusUnprocessableEntity, "invalid_rigidity"},
		{"loads overflow", "/analyze", `{"length": 10, "ei": 1, "points": [{"location": 5, "magnitude": 1e308}, {"location": 6, "magnitude": 1e308}]}`, http.StatusUnprocessableEntity, "invalid_geometry"},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, "POST", tt.target, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			body := decodeBody(t, w)
			assert.NotEmpty(t, body["error"])
			if tt.kind != "" {
				assert.Equal(t, tt.kind, body["kind"])
			}
		})
	}
}

func TestCombinationsEndpoint(t *testing.T) {
	t.Parallel()

	bm := `{"length": 6, "ei": 50000, "udls": [
		{"start": 0, "end": 6, "intensity": 10, "case": "D"},
		{"start": 0, "end": 6, "intensity": 5, "case": "L"}]}`
	w := do(t, newTestServer(), "POST", "/combinations?simplified=true", bm)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Len(t, body["combinations"], 2)
	// 1.2(45) + 1.6(22.5) = 90 beats 1.4(45) = 63
	assert.InDelta(t, 90.0, body["mu"], 1e-6)
	assert.InDelta(t, 3.0, body["location"], 1e-9)
}

func TestReportEndpoint(t *testing.T) {
	t.Parallel()

	w := do(t, newTestServer(), "POST", "/report?diagrams=false", centerLoad)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Samples = 11
	cfg.RateLimit = 0.001
	cfg.RateBurst = 2
	s := server.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for i := 0; i < 2; i++ {
		w := do(t, s, "POST", "/analyze", centerLoad)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := do(t, s, "POST", "/analyze", centerLoad)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// health checks are never limited
	w = do(t, s, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	w := do(t, newTestServer(), "GET", "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(centerLoad))
	req.Header.Set(server.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(server.RequestIDHeader))
	assert.Equal(t, "abc-123", decodeBody(t, w)["id"])
}

func TestRunShutdown(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := config.Default()
	cfg.Addr = addr
	s := server.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
