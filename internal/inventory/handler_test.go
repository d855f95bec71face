package inventory_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/inventory"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/testing/consoletest"
)

func setup(t *testing.T) (http.Handler, *consoletest.Backend) {
	t.Helper()
	be := consoletest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/inventory":
			consoletest.JSON(w, http.StatusOK, map[string]any{"inventory": []any{
				map[string]any{"id": "i1", "name": "Archer C6", "category": "router", "quantity": 2, "minQuantity": 5, "unitPrice": 4500},
				map[string]any{"id": "i2", "name": "Cat6 Cable", "category": "cable", "quantity": 300, "minQuantity": 50, "unitPrice": 40},
			}})
		case r.Method == http.MethodPost && r.URL.Path == "/inventory":
			consoletest.JSON(w, http.StatusCreated, map[string]any{"id": "i3"})
		default:
			consoletest.JSON(w, http.StatusNotFound, map[string]string{"message": "Item not found"})
		}
	})
	h := inventory.NewHandler(nil, inventory.NewRepository(be.Client()), consoletest.Responder(t), shared.NewValidator())
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r, be
}

func TestListShowsStatsAndLowStock(t *testing.T) {
	router, _ := setup(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, consoletest.Request(http.MethodGet, "/inventory", nil, consoletest.Session(consoletest.Employee())))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Archer C6 (2 left)")
	assert.Contains(t, body, "Rs21,000")
	assert.Contains(t, body, "Low Stock</span>")
}

func TestListStockFilter(t *testing.T) {
	router, _ := setup(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, consoletest.Request(http.MethodGet, "/inventory?stock=normal&category=cable", nil, consoletest.Session(consoletest.Employee())))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/inventory/i2"`)
	assert.NotContains(t, rec.Body.String(), `href="/inventory/i1"`)
}

func TestCreateSendsTypedPayload(t *testing.T) {
	router, be := setup(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, consoletest.Request(http.MethodPost, "/inventory/new", url.Values{
		"name":        {"Splitter"},
		"category":    {"connector"},
		"quantity":    {"10"},
		"minQuantity": {"2"},
		"unitPrice":   {"150"},
	}, consoletest.Session(consoletest.Employee())))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	calls := be.CallsTo(http.MethodPost, "/inventory")
	require.Len(t, calls, 1)
	assert.Equal(t, 10.0, calls[0].Body["quantity"])
	assert.Equal(t, 150.0, calls[0].Body["unitPrice"])
	assert.NotContains(t, calls[0].Body, "purchaseDate")
}

func TestMissingItemRendersNotFound(t *testing.T) {
	router, _ := setup(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, consoletest.Request(http.MethodGet, "/inventory/nope", nil, consoletest.Session(consoletest.Employee())))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Back to inventory")
}
