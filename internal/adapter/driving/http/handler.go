// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/adminpanel/internal/adapter/driving/tokencookie"
	"github.com/ericfisherdev/adminpanel/internal/application"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	guard         *application.SessionGuard
	db            Pinger
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(guard *application.SessionGuard, db Pinger, secureCookies bool, logger *slog.Logger) *Handler {
	return &Handler{
		guard:         guard,
		db:            db,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// RegisterAPIRoutes registers the API endpoints on mux. None of them require
// a session.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/session", h.Session)
}

// ApplyMiddleware wraps the handler with logging and recovery.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, next)
	return loggingMiddleware(logger, wrapped)
}

// Health reports liveness and database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Database: "ok",
		Time:     time.Now().UTC().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("health check: database unreachable", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Session runs the validity check against the request's token and reports
// the result. Malformed or expired tokens are cleared as a side effect.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	store := tokencookie.New(w, r, h.secureCookies)
	authenticated := h.guard.CheckTokenValidity(r.Context(), store)

	resp := SessionResponse{
		Authenticated:        authenticated,
		LoadingDelayMS:       h.guard.LoadingDelay().Milliseconds(),
		RevalidateIntervalMS: h.guard.RevalidateInterval().Milliseconds(),
	}

	if authenticated {
		token, _ := store.Get(r.Context())
		_, claims := h.guard.Inspect(token)
		resp.ExpiresAt = claims.ExpiresAt.UTC().Format(time.RFC3339)
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}
