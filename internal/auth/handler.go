package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
)

// HomePath is where a signed-in user lands.
const HomePath = "/dashboard"

// Handler serves sign-in and sign-out.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	view      view.Responder
	validator *shared.Validator
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, responder view.Responder, validator *shared.Validator) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, view: responder, validator: validator}
}

// MountRoutes registers the public sign-in routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get(view.LoginPath, h.showLogin)
	r.Post(view.LoginPath, h.handleLogin)
}

// MountProtected registers routes that need a signed-in session.
func (h *Handler) MountProtected(r chi.Router) {
	r.Post("/auth/logout", h.handleLogout)
}

type loginPage struct {
	Form   loginForm
	Errors shared.FormErrors
	Next   string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if shared.SessionFromContext(r.Context()).Authenticated() {
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
		return
	}
	h.view.Render(w, r, "pages/login", "Sign in", loginPage{Next: safeNext(r.URL.Query().Get("next"))}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	next := safeNext(r.PostFormValue("next"))
	form, errs := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}.validate(h.validator)

	if !errs.Any() {
		res, err := h.service.Authenticate(r.Context(), form.Email, form.Password)
		switch {
		case err == nil && sess != nil:
			sess.SignIn(res.Token, res.User)
			if h.view.CSRF != nil {
				h.view.CSRF.Rotate(sess)
			}
			h.logger.Info("user signed in", slog.String("user", res.User.ID), slog.String("role", res.User.Role))
			h.view.RedirectWithFlash(w, r, next, "success", "Welcome back, "+res.User.FirstName)
			return
		case err == nil:
			h.logger.Error("session missing during login")
			errs = shared.FormErrors{"general": "Login failed. Please try again."}
		case errors.Is(err, shared.ErrInvalidCredentials):
			errs = shared.FormErrors{"general": "Invalid email or password"}
		default:
			h.logger.Error("login failed", slog.Any("error", err))
			errs = shared.FormErrors{"general": "Login failed. Please try again."}
		}
	}

	form.Password = ""
	h.view.Render(w, r, "pages/login", "Sign in", loginPage{Form: form, Errors: errs, Next: next}, http.StatusBadRequest)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if user := sess.CurrentUser(); user != nil {
			h.logger.Info("user signed out", slog.String("user", user.ID))
		}
		sess.SignOut()
		if h.view.CSRF != nil {
			h.view.CSRF.Rotate(sess)
		}
	}
	h.view.RedirectWithFlash(w, r, view.LoginPath, "success", "You have been logged out")
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") || strings.HasPrefix(next, view.LoginPath) {
		return HomePath
	}
	return next
}
