package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/shared"
)

type refresherFunc func(ctx context.Context) (string, error)

func (f refresherFunc) Refresh(ctx context.Context) (string, error) { return f(ctx) }

func staticToken(token string) backend.TokenSource {
	return func(context.Context) string { return token }
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":"1","name":"Fiber"}]`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL+"/api/", backend.WithTokenSource(staticToken("abc")))
	var out []map[string]string
	require.NoError(t, client.Get(context.Background(), "/connection-types", map[string][]string{"q": {"x"}}, &out))

	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "/api/connection-types", gotPath)
	assert.Equal(t, "q=x", gotQuery)
	assert.Equal(t, "Fiber", out[0]["name"])
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := backend.New(srv.URL, backend.WithTokenSource(staticToken("")))
	require.NoError(t, client.Delete(context.Background(), "/connection-types/1", nil))
}

func TestClientSurfacesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Email already exists"}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	err := client.Post(context.Background(), "/users", map[string]string{"email": "a@b.co"}, nil)

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Email already exists", backend.Message(err, "Failed"))
	assert.Equal(t, "Failed", backend.Message(errors.New("dial"), "Failed"))
}

func TestClientMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such customer"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	err := backend.New(srv.URL).Get(context.Background(), "/customers/9", nil, &struct{}{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NotErrorIs(t, err, shared.ErrUnauthorized)
}

func TestClientWithoutRefresherReturnsUnauthorized(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := backend.New(srv.URL, backend.WithTokenSource(staticToken("stale"))).Get(context.Background(), "/dashboard", nil, nil)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRetriesOnceAfterRefresh(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cash", body["paymentMethod"])
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	refreshed := 0
	client := backend.New(srv.URL,
		backend.WithTokenSource(staticToken("stale")),
		backend.WithRefresher(refresherFunc(func(context.Context) (string, error) {
			refreshed++
			return "fresh", nil
		})),
	)
	var out map[string]bool
	require.NoError(t, client.Post(context.Background(), "/payments/1/mark-paid", map[string]string{"paymentMethod": "cash"}, &out))
	assert.True(t, out["ok"])
	assert.Equal(t, 1, refreshed)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientStopsWhenRefreshFails(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := backend.New(srv.URL, backend.WithRefresher(refresherFunc(func(context.Context) (string, error) {
		return "", errors.New("no refresh token")
	})))
	err := client.Get(context.Background(), "/users", nil, nil)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	client := backend.New(srv.URL, backend.WithMetrics(backend.NewMetrics(reg)))
	require.NoError(t, client.Get(context.Background(), "/customers/42", nil, nil))
	require.NoError(t, client.Get(context.Background(), "/customers/43", nil, nil))

	count, err := testutil.GatherAndCount(reg, "console_backend_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var creds map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"t0k","user":{"id":"u1","firstName":"Ayesha","lastName":"Khan","role":"admin"}}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL+"/api", backend.WithTokenSource(staticToken("ignored")))
	res, err := client.Login(context.Background(), "a@isp.pk", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t0k", res.Token)
	assert.True(t, res.User.IsAdmin())

	_, err = client.Login(context.Background(), "a@isp.pk", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	assert.Equal(t, "Invalid credentials", backend.Message(err, ""))
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sign := func(exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
		s, err := tok.SignedString([]byte("k"))
		require.NoError(t, err)
		return s
	}

	assert.True(t, backend.TokenExpired(sign(now.Add(-time.Minute)), now))
	assert.False(t, backend.TokenExpired(sign(now.Add(time.Hour)), now))
	assert.False(t, backend.TokenExpired("opaque-session-token", now))
	assert.False(t, backend.TokenExpired("", now))
}

func TestSessionRefresherReplacesSessionToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/refresh" && r.Header.Get("Authorization") == "Bearer old":
			_, _ = w.Write([]byte(`{"token":"new"}`))
		case r.URL.Path == "/packages" && r.Header.Get("Authorization") == "Bearer new":
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	sess := &shared.Session{ID: "s1"}
	sess.SignIn("old", shared.CurrentUser{ID: "u1", Role: shared.RoleAdmin})
	ctx := shared.ContextWithSession(context.Background(), sess)

	client := backend.New(srv.URL, backend.WithTokenSource(shared.AccessTokenFromContext))
	backend.WithRefresher(backend.NewSessionRefresher(client, "/auth/refresh"))(client)

	var out []any
	require.NoError(t, client.Get(ctx, "/packages", nil, &out))
	assert.Equal(t, "new", sess.AccessToken())
	assert.Equal(t, "u1", sess.CurrentUser().ID)
}

func TestNewSessionRefresherDisabledWithoutPath(t *testing.T) {
	assert.Nil(t, backend.NewSessionRefresher(backend.New("http://backend"), ""))
}
