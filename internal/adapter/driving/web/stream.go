package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ericfisherdev/adminpanel/internal/adapter/driving/tokencookie"
	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

// sessionEvent is the data of a "session" Server-Sent Event.
type sessionEvent struct {
	Loading       bool   `json:"loading"`
	Authenticated bool   `json:"authenticated"`
	Redirect      string `json:"redirect,omitempty"`
}

// SessionStream runs the session guard for one open tab. The connection is
// the mounted view: the guard starts when it opens and its timers stop when
// the browser disconnects. A purge during the first check reaches the
// browser as Set-Cookie; later purges happen on the sign-in navigation the
// redirect event triggers.
func (h *Handler) SessionStream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	store := tokencookie.New(w, r, h.secureCookies)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// The stream outlives the server's WriteTimeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("session stream deadline", "error", err)
	}

	h.guard.Watch(r.Context(), store, func(state model.SessionState) {
		if err := writeSessionEvent(w, state); err != nil {
			h.logger.Debug("session stream write", "error", err)
			return
		}
		if err := rc.Flush(); err != nil {
			h.logger.Debug("session stream flush", "error", err)
		}
	})
}

func writeSessionEvent(w http.ResponseWriter, state model.SessionState) error {
	ev := sessionEvent{Loading: state.Loading, Authenticated: state.Authenticated}
	if state.ShouldRedirect() {
		ev.Redirect = signInPath
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: session\ndata: %s\n\n", data)
	return err
}
