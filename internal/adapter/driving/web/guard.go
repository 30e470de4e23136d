package web

import (
	"context"
	"net/http"

	g "maragu.dev/gomponents"

	"github.com/ericfisherdev/adminpanel/internal/adapter/driving/tokencookie"
	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

const (
	signInPath = "/auth/signin"
	signUpPath = "/auth/signup"
)

// contentFunc produces the body of a page inside the shell. user is nil for
// a valid token that does not belong to a local account.
type contentFunc func(h *Handler, ctx context.Context, user *model.User, csrf string) (g.Node, error)

// shellPage is an entry of the authenticated route table.
type shellPage struct {
	Path    string
	Title   string
	NavName string // empty hides the page from the sidebar
	content contentFunc
}

// shellPages is the authenticated route table. Every entry renders inside
// the layout shell with lazily loaded content.
var shellPages = []shellPage{
	{Path: "/", Title: "eCommerce Dashboard", NavName: "Dashboard", content: (*Handler).dashboardContent},
	{Path: "/calendar", Title: "Calendar", NavName: "Calendar", content: (*Handler).calendarContent},
	{Path: "/profile", Title: "Profile", NavName: "Profile", content: (*Handler).profileContent},
	{Path: "/tables", Title: "Tables", NavName: "Tables", content: (*Handler).tablesContent},
	{Path: "/settings", Title: "Settings", NavName: "Settings", content: (*Handler).settingsContent},
}

// publicPages is the unauthenticated route table.
var publicPages = map[string]func(h *Handler, w http.ResponseWriter, r *http.Request){
	signInPath: (*Handler).signInPage,
	signUpPath: (*Handler).signUpPage,
}

type routeKind int

const (
	routeShell routeKind = iota
	routePublic
	routeNotFound
	routeRedirect
)

type routeMatch struct {
	kind routeKind
	page *shellPage
}

// resolveRoute picks the route set by authentication state. Authenticated
// users only see shell pages; anything else, sign-in included, is the in-shell
// 404. Unauthenticated users only see the public pages and are redirected to
// sign-in from everywhere else.
func resolveRoute(authenticated bool, path string) routeMatch {
	if !authenticated {
		if _, ok := publicPages[path]; ok {
			return routeMatch{kind: routePublic}
		}
		return routeMatch{kind: routeRedirect}
	}

	if page := findShellPage(path); page != nil {
		return routeMatch{kind: routeShell, page: page}
	}
	return routeMatch{kind: routeNotFound}
}

func findShellPage(path string) *shellPage {
	for i := range shellPages {
		if shellPages[i].Path == path {
			return &shellPages[i]
		}
	}
	return nil
}

// session is the outcome of the per-request guard check.
type session struct {
	authenticated bool
	token         string
	user          *model.User
}

// checkSession runs the validity check for this request, purging a bad token,
// and resolves the signed-in user when the token is one we issued.
func (h *Handler) checkSession(w http.ResponseWriter, r *http.Request) session {
	store := tokencookie.New(w, r, h.secureCookies)
	if !h.guard.CheckTokenValidity(r.Context(), store) {
		return session{}
	}

	token, _ := store.Get(r.Context())
	user, err := h.auth.CurrentUser(r.Context(), token)
	if err != nil {
		h.logger.Error("resolve current user", "error", err)
	}
	return session{authenticated: true, token: token, user: user}
}

// requireSession guards form actions of the authenticated set. Failing
// requests are sent to sign-in with a full navigation.
func (h *Handler) requireSession(next func(w http.ResponseWriter, r *http.Request, s session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := h.checkSession(w, r)
		if !s.authenticated {
			redirect(w, r, signInPath)
			return
		}
		next(w, r, s)
	}
}

// redirect navigates the whole page, also for htmx requests.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
