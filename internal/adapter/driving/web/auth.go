package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ericfisherdev/adminpanel/internal/adapter/driving/tokencookie"
	vm "github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/views"
	"github.com/ericfisherdev/adminpanel/internal/application"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

const genericFormError = "Something went wrong. Please try again."

func (h *Handler) signInPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.SignIn(vm.AuthFormViewModel{
		CSRFToken: csrfToken(w, r, h.secureCookies),
		Flash:     h.popFlash(w, r),
	}))
}

func (h *Handler) signUpPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.SignUp(vm.AuthFormViewModel{
		CSRFToken: csrfToken(w, r, h.secureCookies),
		Flash:     h.popFlash(w, r),
	}))
}

// SignIn handles the sign-in form. Any credential failure shows one generic
// message.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	store := tokencookie.New(w, r, h.secureCookies)

	user, err := h.auth.SignIn(r.Context(), store, email, r.FormValue("password"))
	if err != nil {
		status, msg := http.StatusUnprocessableEntity, capitalize(application.ErrInvalidCredentials.Error())+"."
		if !errors.Is(err, application.ErrInvalidCredentials) {
			h.logger.Error("sign in", "error", err)
			status, msg = http.StatusInternalServerError, genericFormError
		}
		h.render(w, r, status, views.SignIn(vm.AuthFormViewModel{
			CSRFToken: csrfToken(w, r, h.secureCookies),
			Email:     email,
			Error:     msg,
		}))
		return
	}

	h.setFlash(w, "success", "Welcome back, "+user.DisplayName()+".")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignUp handles the sign-up form and signs the new user in.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	in := application.SignUpInput{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
		Confirm:  r.FormValue("confirm"),
	}
	store := tokencookie.New(w, r, h.secureCookies)

	user, err := h.auth.SignUp(r.Context(), store, in)
	if err != nil {
		status, msg := signUpError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("sign up", "error", err)
		}
		h.render(w, r, status, views.SignUp(vm.AuthFormViewModel{
			CSRFToken: csrfToken(w, r, h.secureCookies),
			Name:      in.Name,
			Email:     in.Email,
			Error:     msg,
		}))
		return
	}

	h.setFlash(w, "success", "Welcome, "+user.DisplayName()+".")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func signUpError(err error) (int, string) {
	switch {
	case errors.Is(err, driven.ErrEmailTaken):
		return http.StatusConflict, "An account with this email already exists."
	case errors.Is(err, application.ErrNameRequired),
		errors.Is(err, application.ErrEmailInvalid),
		errors.Is(err, application.ErrWeakPassword),
		errors.Is(err, application.ErrPasswordMismatch):
		return http.StatusUnprocessableEntity, capitalize(err.Error()) + "."
	default:
		return http.StatusInternalServerError, genericFormError
	}
}

// Logout clears the token whatever its state and sends the browser to
// sign-in with a full navigation.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	if err := h.auth.Logout(r.Context(), tokencookie.New(w, r, h.secureCookies)); err != nil {
		h.logger.Error("logout", "error", err)
	}
	redirect(w, r, signInPath)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
