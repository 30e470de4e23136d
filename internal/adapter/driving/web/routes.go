package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux. GET
// navigations fall through to Page, which applies the route tables.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /", h.Page)
	mux.HandleFunc("GET /fragments/{path...}", h.Fragment)
	mux.HandleFunc("GET /session/stream", h.SessionStream)

	mux.HandleFunc("POST /auth/signin", h.SignIn)
	mux.HandleFunc("POST /auth/signup", h.SignUp)
	mux.HandleFunc("POST /auth/logout", h.Logout)

	mux.HandleFunc("POST /ui/account-menu", h.AccountMenu)

	mux.HandleFunc("POST /settings/profile", h.UpdateProfile)
	mux.HandleFunc("POST /settings/github-token", h.SaveGitHubToken)
	mux.HandleFunc("POST /settings/github-import", h.ImportGitHub)
}
