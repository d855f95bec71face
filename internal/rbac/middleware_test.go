package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/shared"
)

func requestWithUser(user *shared.CurrentUser, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	sess := &shared.Session{ID: "s1"}
	if user != nil {
		sess.SignIn(token, *user)
	}
	return req.WithContext(shared.ContextWithSession(context.Background(), sess))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	rr := httptest.NewRecorder()
	Middleware{}.RequireAuth(okHandler).ServeHTTP(rr, requestWithUser(nil, ""))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/auth/login?next=%2Femployees", rr.Header().Get("Location"))
}

func TestRequireAuthClearsExpiredToken(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	req := requestWithUser(&shared.CurrentUser{ID: "u1", Role: "admin"}, tok)
	rr := httptest.NewRecorder()
	Middleware{Now: func() time.Time { return now }}.RequireAuth(okHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, shared.SessionFromContext(req.Context()).Authenticated())
}

func TestRequireAuthPassesOpaqueToken(t *testing.T) {
	rr := httptest.NewRecorder()
	Middleware{}.RequireAuth(okHandler).ServeHTTP(rr, requestWithUser(&shared.CurrentUser{ID: "u1"}, "opaque"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRequireAdmin(t *testing.T) {
	forbidden := 0
	m := Middleware{Forbidden: func(w http.ResponseWriter, r *http.Request) {
		forbidden++
		w.WriteHeader(http.StatusForbidden)
	}}

	rr := httptest.NewRecorder()
	m.RequireAdmin()(okHandler).ServeHTTP(rr, requestWithUser(&shared.CurrentUser{ID: "u1", Role: "employee"}, "t"))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, 1, forbidden)

	rr = httptest.NewRecorder()
	m.RequireAdmin()(okHandler).ServeHTTP(rr, requestWithUser(&shared.CurrentUser{ID: "u2", Role: "Admin"}, "t"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
