package web

import (
	"errors"
	"net/http"

	"github.com/ericfisherdev/adminpanel/internal/application"
	"github.com/ericfisherdev/adminpanel/internal/domain/model"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

const settingsPath = "/settings"

// settingsAction wraps a settings form handler with the session and CSRF
// checks and the post-redirect-get back to the settings page.
func (h *Handler) settingsAction(action func(r *http.Request, user *model.User) (string, error)) http.HandlerFunc {
	return h.requireSession(func(w http.ResponseWriter, r *http.Request, s session) {
		if !validateCSRF(r) {
			http.Error(w, "invalid CSRF token", http.StatusForbidden)
			return
		}
		if s.user == nil {
			h.setFlash(w, "error", "This session has no profile to change.")
			redirect(w, r, settingsPath)
			return
		}

		msg, err := action(r, s.user)
		if err != nil {
			h.setFlash(w, "error", h.settingsError(r, err))
		} else {
			h.setFlash(w, "success", msg)
		}
		redirect(w, r, settingsPath)
	})
}

// UpdateProfile saves name, title and bio.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	h.settingsAction(func(r *http.Request, user *model.User) (string, error) {
		_, err := h.profiles.Update(r.Context(), user.ID, model.ProfileUpdate{
			Name:  r.FormValue("name"),
			Title: r.FormValue("title"),
			Bio:   r.FormValue("bio"),
		})
		return "Profile saved.", err
	})(w, r)
}

// SaveGitHubToken stores or removes the GitHub token.
func (h *Handler) SaveGitHubToken(w http.ResponseWriter, r *http.Request) {
	h.settingsAction(func(r *http.Request, _ *model.User) (string, error) {
		token := r.FormValue("github_token")
		if err := h.profiles.SetGitHubToken(r.Context(), token); err != nil {
			return "", err
		}
		if token == "" {
			return "GitHub token removed.", nil
		}
		return "GitHub token saved.", nil
	})(w, r)
}

// ImportGitHub copies the public GitHub profile into the user's profile.
func (h *Handler) ImportGitHub(w http.ResponseWriter, r *http.Request) {
	h.settingsAction(func(r *http.Request, user *model.User) (string, error) {
		_, err := h.profiles.ImportGitHub(r.Context(), user.ID, r.FormValue("github_login"))
		return "GitHub profile imported.", err
	})(w, r)
}

func (h *Handler) settingsError(r *http.Request, err error) string {
	switch {
	case errors.Is(err, application.ErrNameRequired):
		return "Name is required."
	case errors.Is(err, application.ErrFieldTooLong):
		return "One of the fields is too long."
	case errors.Is(err, application.ErrLoginRequired):
		return "Enter a GitHub username."
	case errors.Is(err, application.ErrProfileImportDisabled):
		return "GitHub import is not available."
	case errors.Is(err, driven.ErrProfileNotFound):
		return "No GitHub user with that name."
	case errors.Is(err, driven.ErrEncryptionKeyNotSet):
		return "Tokens cannot be stored without ADMINPANEL_SECRET_KEY."
	default:
		h.logger.Error("settings action", "path", r.URL.Path, "error", err)
		return genericFormError
	}
}
