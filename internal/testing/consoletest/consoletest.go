// Package consoletest provides fixtures for handler tests: a recording fake
// backend, parsed templates and signed-in sessions.
package consoletest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
)

// Admin is a signed-in admin user.
func Admin() *shared.CurrentUser {
	return &shared.CurrentUser{ID: "admin-1", FirstName: "Sana", LastName: "Malik", Email: "sana@netline.pk", Role: shared.RoleAdmin}
}

// Employee is a signed-in non-admin user.
func Employee() *shared.CurrentUser {
	return &shared.CurrentUser{ID: "emp-7", FirstName: "Usman", LastName: "Raza", Email: "usman@netline.pk", Role: "employee"}
}

// Call is one request the fake backend received.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
	Auth   string
}

// Backend is a fake ISP backend that records every call.
type Backend struct {
	*httptest.Server
	mu    sync.Mutex
	calls []Call
}

// NewBackend starts a fake backend serving handler under /api.
func NewBackend(t *testing.T, handler http.HandlerFunc) *Backend {
	t.Helper()
	b := &Backend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		call := Call{
			Method: r.Method,
			Path:   strings.TrimPrefix(r.URL.Path, "/api"),
			Query:  r.URL.Query(),
			Auth:   r.Header.Get("Authorization"),
		}
		if len(bytes.TrimSpace(raw)) > 0 {
			_ = json.Unmarshal(raw, &call.Body)
		}
		b.mu.Lock()
		b.calls = append(b.calls, call)
		b.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(raw))
		r.URL.Path = call.Path
		handler(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

// Client returns a backend client that forwards the session token.
func (b *Backend) Client() *backend.Client {
	return backend.New(b.URL+"/api", backend.WithTokenSource(shared.AccessTokenFromContext))
}

// Calls returns a copy of every recorded call.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallsTo filters recorded calls by method and path.
func (b *Backend) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Responder returns a view.Responder over the real templates.
func Responder(t *testing.T) view.Responder {
	t.Helper()
	engine, err := view.NewEngine()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	return view.Responder{Templates: engine, CSRF: shared.NewCSRFManager("test-csrf")}
}

// Session returns an in-memory session, signed in when user is non-nil.
func Session(user *shared.CurrentUser) *shared.Session {
	sess := &shared.Session{ID: "test-session"}
	if user != nil {
		sess.SignIn("test-token", *user)
	}
	return sess
}

// Request builds a request carrying sess. A non-nil form is sent urlencoded.
func Request(method, target string, form url.Values, sess *shared.Session) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req.WithContext(shared.ContextWithSession(context.Background(), sess))
}

// Flash pops the next flash message text from sess.
func Flash(sess *shared.Session) string {
	if msg := sess.PopFlash(); msg != nil {
		return msg.Message
	}
	return ""
}
