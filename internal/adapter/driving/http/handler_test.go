package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/adminpanel/internal/adapter/driving/http"
	"github.com/ericfisherdev/adminpanel/internal/application"
	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

// farFutureToken carries {"exp":9999999999}.
const farFutureToken = "a.eyJleHAiOjk5OTk5OTk5OTl9.c"

// expiredToken carries {"exp":1}.
const expiredToken = "a.eyJleHAiOjF9.c"

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupMux(db httphandler.Pinger) http.Handler {
	guard := application.NewSessionGuard(discardLogger(), 2*time.Second, time.Minute)
	h := httphandler.NewHandler(guard, db, false, discardLogger())

	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, h)
	mux.HandleFunc("GET /panic", func(http.ResponseWriter, *http.Request) { panic("boom") })
	return httphandler.ApplyMiddleware(mux, discardLogger())
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	setupMux(stubPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body httphandler.HealthResponse
	decodeJSON(t, rec, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Database)
	assert.NotEmpty(t, body.Time)
}

func TestHealth_DatabaseDown(t *testing.T) {
	rec := httptest.NewRecorder()
	setupMux(stubPinger{err: errors.New("closed")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body httphandler.HealthResponse
	decodeJSON(t, rec, &body)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unreachable", body.Database)
}

func TestSession(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		authenticated bool
		purged        bool
	}{
		{name: "no token"},
		{name: "valid token", token: farFutureToken, authenticated: true},
		{name: "expired token", token: expiredToken, purged: true},
		{name: "malformed token", token: "garbage", purged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: model.TokenKey, Value: tt.token})
			}
			rec := httptest.NewRecorder()

			setupMux(stubPinger{}).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			var body httphandler.SessionResponse
			decodeJSON(t, rec, &body)
			assert.Equal(t, tt.authenticated, body.Authenticated)
			assert.Equal(t, int64(2000), body.LoadingDelayMS)
			assert.Equal(t, int64(60000), body.RevalidateIntervalMS)

			if tt.authenticated {
				assert.Equal(t, "2286-11-20T17:46:39Z", body.ExpiresAt)
			} else {
				assert.Empty(t, body.ExpiresAt)
			}

			var cleared bool
			for _, c := range rec.Result().Cookies() {
				if c.Name == model.TokenKey && c.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.purged, cleared)
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	setupMux(stubPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestMiddleware_Flushes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /stream", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("data: x\n\n"))
		assert.NoError(t, http.NewResponseController(w).Flush())
	})

	rec := httptest.NewRecorder()
	httphandler.ApplyMiddleware(mux, discardLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	assert.True(t, rec.Flushed)
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		logged bool
		level  string
	}{
		{"page at info", "/dashboard", http.StatusOK, true, "INFO"},
		{"static asset is quiet", "/static/app.js", http.StatusOK, false, ""},
		{"session stream is quiet", "/session/stream", http.StatusOK, false, ""},
		{"health check is quiet", "/api/v1/health", http.StatusOK, false, ""},
		{"missing asset still logged", "/static/nope.js", http.StatusNotFound, true, "INFO"},
		{"server error", "/dashboard", http.StatusInternalServerError, true, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})
			rec := httptest.NewRecorder()
			httphandler.ApplyMiddleware(next, logger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			out := buf.String()
			if !tt.logged {
				assert.Empty(t, out)
				return
			}
			assert.Contains(t, out, "level="+tt.level)
			assert.Contains(t, out, "path="+tt.path)
		})
	}
}
