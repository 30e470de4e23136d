// Package web implements the HTML GUI driving adapter.
package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"

	vm "github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/views"
	"github.com/ericfisherdev/adminpanel/internal/application"
)

// Handler is the web GUI driving adapter.
type Handler struct {
	guard         *application.SessionGuard
	auth          *application.AuthService
	profiles      *application.ProfileService
	dashboard     *application.DashboardService
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	guard *application.SessionGuard,
	auth *application.AuthService,
	profiles *application.ProfileService,
	dashboard *application.DashboardService,
	secureCookies bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		guard:         guard,
		auth:          auth,
		profiles:      profiles,
		dashboard:     dashboard,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Page serves every GET navigation that is not a fragment, an asset or an
// API call, choosing the route set from the guard check.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	s := h.checkSession(w, r)

	match := resolveRoute(s.authenticated, r.URL.Path)
	switch match.kind {
	case routeRedirect:
		http.Redirect(w, r, signInPath, http.StatusSeeOther)
	case routePublic:
		publicPages[r.URL.Path](h, w, r)
	case routeNotFound:
		h.renderShell(w, r, s, http.StatusNotFound, "Page Not Found", "", views.Component(views.NotFound()))
	case routeShell:
		h.renderShell(w, r, s, http.StatusOK, match.page.Title, match.page.Path, nil)
	}
}

// Fragment serves the lazily loaded content of a shell page.
func (h *Handler) Fragment(w http.ResponseWriter, r *http.Request) {
	s := h.checkSession(w, r)
	if !s.authenticated {
		redirect(w, r, signInPath)
		return
	}

	page := findShellPage("/" + r.PathValue("path"))
	if page == nil {
		h.renderNode(w, r, http.StatusNotFound, views.NotFound())
		return
	}

	node, err := page.content(h, r.Context(), s.user, csrfToken(w, r, h.secureCookies))
	if err != nil {
		h.logger.Error("render fragment", "path", page.Path, "error", err)
		h.renderNode(w, r, http.StatusInternalServerError, views.FragmentError())
		return
	}
	h.renderNode(w, r, http.StatusOK, node)
}

// renderShell renders a full page inside the layout. A nil content makes the
// content region load fragmentFor(activePath) once the loading gate clears.
func (h *Handler) renderShell(w http.ResponseWriter, r *http.Request, s session, status int, title, activePath string, content templ.Component) {
	data := vm.ShellViewModel{
		Title:        title,
		Nav:          navItems(activePath),
		User:         toIdentity(s.user),
		CSRFToken:    csrfToken(w, r, h.secureCookies),
		Flash:        h.popFlash(w, r),
		FragmentPath: fragmentFor(activePath),
	}
	h.render(w, r, status, views.Shell(data, content))
}

// render writes c as an HTML response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("render html", "path", r.URL.Path, "error", err)
	}
}

// renderNode writes a gomponents fragment through the templ contract.
func (h *Handler) renderNode(w http.ResponseWriter, r *http.Request, status int, node g.Node) {
	h.render(w, r, status, views.Component(node))
}

func navItems(activePath string) []vm.NavItem {
	items := make([]vm.NavItem, 0, len(shellPages))
	for _, p := range shellPages {
		if p.NavName == "" {
			continue
		}
		items = append(items, vm.NavItem{Label: p.NavName, Href: p.Path, Active: p.Path == activePath})
	}
	return items
}

func fragmentFor(path string) string {
	return "/fragments/" + strings.TrimPrefix(path, "/")
}
