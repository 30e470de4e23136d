package web

import (
	"encoding/base64"
	"net/http"
	"strings"

	vm "github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/viewmodel"
)

const flashCookieName = "flash"

// setFlash queues a toast for the next rendered page.
func (h *Handler) setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(kind + "\n" + message)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}

// popFlash returns the queued toast, if any, and deletes it.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) *vm.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(string(raw), "\n")
	if !ok || message == "" {
		return nil
	}
	if kind != "success" {
		kind = "error"
	}
	return &vm.Flash{Kind: kind, Message: message}
}
