package web

import (
	"net/http"

	"github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/views"
	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

// AccountMenu applies one event to the posted menu state and returns the
// re-rendered panel, or 204 when the state is unchanged. It has no side effects, so it needs neither a session
// nor a CSRF token.
func (h *Handler) AccountMenu(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	current := model.ParseMenuState(r.PostFormValue("state"))
	next := current.Next(model.MenuEvent(r.PostFormValue("event")), r.PostFormValue("key"))

	w.Header().Set("Cache-Control", "no-store")
	if next == current {
		// Keep the live panel, and with it keyboard focus.
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.renderNode(w, r, http.StatusOK, views.AccountMenuPanel(next, csrfToken(w, r, h.secureCookies)))
}
