package view

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/netline-isp/isp-console/internal/shared"
)

// LoginPath is where signed-out users are sent.
const LoginPath = "/auth/login"

// Responder bundles the rendering chores every screen handler repeats.
type Responder struct {
	Logger    *slog.Logger
	Templates *Engine
	CSRF      *shared.CSRFManager
}

// ConfirmPage describes an explicit confirmation step for a destructive or
// status-changing action. Nothing reaches the backend until it is accepted.
type ConfirmPage struct {
	Title       string
	Message     string
	Action      string
	ActionLabel string
	CancelHref  string
	Danger      bool

	// Hidden fields are posted along with the confirmation.
	Hidden map[string]string
}

// NotFoundPage is the empty state for a record the backend does not know.
type NotFoundPage struct {
	Resource  string
	BackHref  string
	BackLabel string
}

// Render writes a page with flash, CSRF token and current user filled in.
func (p Responder) Render(w http.ResponseWriter, r *http.Request, name, title string, data any, status int) {
	sess := shared.SessionFromContext(r.Context())
	var flash *shared.FlashMessage
	var csrfToken string
	if sess != nil {
		flash = sess.PopFlash()
		if p.CSRF != nil {
			if token, err := p.CSRF.EnsureToken(r.Context(), sess); err == nil {
				csrfToken = token
			}
		}
	}
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	td := TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		CurrentUser: sess.CurrentUser(),
		Data:        data,
	}
	if err := p.Templates.Render(w, name, td); err != nil {
		p.logger().Error("render template", slog.String("template", name), slog.Any("error", err))
	}
}

// RedirectWithFlash queues a flash message and redirects with 303.
func (p Responder) RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil && message != "" {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// Flash queues a message for the page rendered next, which may be this one.
func (p Responder) Flash(r *http.Request, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil && message != "" {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
}

// Confirm renders the confirmation step.
func (p Responder) Confirm(w http.ResponseWriter, r *http.Request, page ConfirmPage) {
	p.Render(w, r, "pages/confirm", page.Title, page, http.StatusOK)
}

// NotFound renders the not-found state with a link back to the list.
func (p Responder) NotFound(w http.ResponseWriter, r *http.Request, page NotFoundPage) {
	p.Render(w, r, "pages/not_found", page.Resource+" not found", page, http.StatusNotFound)
}

// Forbidden renders the 403 page.
func (p Responder) Forbidden(w http.ResponseWriter, r *http.Request) {
	p.Render(w, r, "pages/forbidden", "Access denied", nil, http.StatusForbidden)
}

// SignedOut clears the session auth and sends the user to the login screen.
func (p Responder) SignedOut(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.SignOut()
		sess.AddFlash(shared.FlashMessage{Kind: "warning", Message: "Your session has expired. Please sign in again."})
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// HandleBackendError reports whether err was consumed by a sign-out redirect.
// Any other error is logged and left to the caller to present.
func (p Responder) HandleBackendError(w http.ResponseWriter, r *http.Request, err error, msg string, attrs ...any) bool {
	if errors.Is(err, shared.ErrUnauthorized) {
		p.SignedOut(w, r)
		return true
	}
	p.logger().Error(msg, append([]any{slog.Any("error", err)}, attrs...)...)
	return false
}

func (p Responder) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
