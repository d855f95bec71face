package rbac

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/shared"
)

// Middleware gates routes on the signed-in backend user and their role.
type Middleware struct {
	Logger *slog.Logger
	// Forbidden renders the 403 page; plain text when nil.
	Forbidden http.HandlerFunc
	// SignedOut handles missing or expired sessions; redirects to LoginPath when nil.
	SignedOut http.HandlerFunc
	LoginPath string
	Now       func() time.Time
}

// RequireAuth lets the request through only with a live bearer token. A token
// whose exp claim has passed is cleared before the backend ever sees it.
// Anonymous page views are sent to sign in and brought back afterwards.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if !sess.Authenticated() {
			target := m.loginPath()
			if r.Method == http.MethodGet && r.URL.Path != "/" {
				target += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		if backend.TokenExpired(sess.AccessToken(), m.now()) {
			m.logInfo("bearer token expired", slog.String("user", sess.CurrentUser().ID))
			sess.SignOut()
			m.signedOut(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the current user holds one of roles.
func (m Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := normalizeRoles(roles)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := shared.CurrentUserFromContext(r.Context())
			if user == nil {
				m.signedOut(w, r)
				return
			}
			if len(allowed) == 0 || hasRole(allowed, user.Role) {
				next.ServeHTTP(w, r)
				return
			}
			m.logInfo("role check failed", slog.String("user", user.ID), slog.String("role", user.Role), slog.String("path", r.URL.Path))
			if m.Forbidden != nil {
				m.Forbidden(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

// RequireAdmin is RequireRole(shared.RoleAdmin).
func (m Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return m.RequireRole(shared.RoleAdmin)
}

func (m Middleware) signedOut(w http.ResponseWriter, r *http.Request) {
	if m.SignedOut != nil {
		m.SignedOut(w, r)
		return
	}
	http.Redirect(w, r, m.loginPath(), http.StatusSeeOther)
}

func (m Middleware) loginPath() string {
	if m.LoginPath == "" {
		return "/auth/login"
	}
	return m.LoginPath
}

func (m Middleware) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m Middleware) logInfo(msg string, attrs ...any) {
	if m.Logger != nil {
		m.Logger.Info(msg, attrs...)
	}
}

func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(strings.ToLower(r))
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

func hasRole(allowed []string, role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
