package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/dashboard"
	"github.com/netline-isp/isp-console/internal/testing/consoletest"
)

func newRouter(t *testing.T, failRevenue *atomic.Bool) (http.Handler, *consoletest.Backend) {
	t.Helper()
	be := consoletest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dashboard":
			consoletest.JSON(w, http.StatusOK, map[string]any{
				"activeCustomers": 1180,
				"monthlyRevenue":  "254000",
				"paymentStatusDistribution": map[string]any{
					"paid": 30, "pending": 10, "overdue": 0, "cancelled": 0,
				},
				"recentPayments": []map[string]any{
					{"id": "p1", "amount": 1500, "status": "paid", "customer": map[string]any{"name": "Zain Ali"}, "plan": map[string]any{"name": "Basic 10"}},
				},
				"recentCustomers": []map[string]any{
					{"id": "c1", "name": "Hira Khan", "mobile": "03001234567", "plan": map[string]any{"name": "Pro 20"}, "connectionType": map[string]any{"name": "Fiber"}},
				},
				"customerGrowth":        []map[string]any{{"month": "Jan", "count": 20}, {"month": "Feb", "count": 35}},
				"customerRetentionRate": "91%",
			})
		case "/dashboard/quick-stats":
			consoletest.JSON(w, http.StatusOK, map[string]any{"totalCustomers": 1240, "newCustomersThisMonth": 14, "pendingPayments": 45500})
		case "/dashboard/revenue":
			if failRevenue != nil && failRevenue.Load() {
				consoletest.JSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
				return
			}
			consoletest.JSON(w, http.StatusOK, map[string]any{"months": []any{}})
		case "/dashboard/customers":
			consoletest.JSON(w, http.StatusOK, map[string]any{"segments": []any{}})
		default:
			consoletest.JSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		}
	})
	svc := dashboard.NewService(dashboard.NewRepository(be.Client()), nil, nil)
	h := dashboard.NewHandler(nil, svc, consoletest.Responder(t))
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r, be
}

func TestDashboardFetchesAllAggregates(t *testing.T) {
	router, be := newRouter(t, nil)
	sess := consoletest.Session(consoletest.Admin())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, consoletest.Request(http.MethodGet, "/dashboard", nil, sess))

	require.Equal(t, http.StatusOK, rec.Code)
	for _, path := range []string{"/dashboard", "/dashboard/quick-stats", "/dashboard/revenue", "/dashboard/customers"} {
		calls := be.CallsTo(http.MethodGet, path)
		require.Len(t, calls, 1, path)
		assert.Equal(t, "Bearer test-token", calls[0].Auth)
	}

	body := rec.Body.String()
	assert.Contains(t, body, "Welcome back, Sana")
	assert.Contains(t, body, "1,240")
	assert.Contains(t, body, "Rs254,000")
	assert.Contains(t, body, "Rs45,500")
	assert.Contains(t, body, "91%")
	assert.Contains(t, body, "Zain Ali")
	assert.Contains(t, body, "Rs1,500")
	assert.Contains(t, body, "Hira Khan")
	assert.Contains(t, body, "chart-line")
	assert.Contains(t, body, "No revenue data yet")
	assert.Contains(t, body, `href="/customers/new"`)
}

func TestDashboardFailsAsAWhole(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	router, _ := newRouter(t, &fail)
	sess := consoletest.Session(consoletest.Admin())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, consoletest.Request(http.MethodGet, "/dashboard", nil, sess))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to load dashboard data")
	assert.Contains(t, body, "Dashboard data is unavailable right now.")
	assert.NotContains(t, body, "Rs254,000")
	assert.NotContains(t, body, "Zain Ali")
}

func TestDashboardSignsOutOnExpiredToken(t *testing.T) {
	be := consoletest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		consoletest.JSON(w, http.StatusUnauthorized, map[string]any{"message": "jwt expired"})
	})
	svc := dashboard.NewService(dashboard.NewRepository(be.Client()), nil, nil)
	r := chi.NewRouter()
	dashboard.NewHandler(nil, svc, consoletest.Responder(t)).MountRoutes(r)

	sess := consoletest.Session(consoletest.Admin())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, consoletest.Request(http.MethodGet, "/dashboard", nil, sess))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
	assert.Empty(t, sess.AccessToken())
}
