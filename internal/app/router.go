package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/netline-isp/isp-console/internal/auth"
	"github.com/netline-isp/isp-console/internal/connections"
	"github.com/netline-isp/isp-console/internal/customers"
	"github.com/netline-isp/isp-console/internal/dashboard"
	"github.com/netline-isp/isp-console/internal/employees"
	"github.com/netline-isp/isp-console/internal/inventory"
	"github.com/netline-isp/isp-console/internal/invoice"
	"github.com/netline-isp/isp-console/internal/observability"
	"github.com/netline-isp/isp-console/internal/packages"
	"github.com/netline-isp/isp-console/internal/payments"
	"github.com/netline-isp/isp-console/internal/platform/httpx"
	"github.com/netline-isp/isp-console/internal/rbac"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	RBAC           rbac.Middleware
	Metrics        *observability.Metrics

	AuthHandler        *auth.Handler
	SettingsHandler    *auth.SettingsHandler
	DashboardHandler   *dashboard.Handler
	CustomersHandler   *customers.Handler
	ConnectionsHandler *connections.Handler
	PackagesHandler    *packages.Handler
	InventoryHandler   *inventory.Handler
	PaymentsHandler    *payments.Handler
	EmployeesHandler   *employees.Handler
	InvoiceHandler     *invoice.Handler
	JobHandler         *jobs.Handler
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	if static, err := staticHandler(); err != nil {
		params.Logger.Error("mount static assets", slog.Any("error", err))
	} else {
		r.Handle("/static/*", static)
	}

	r.Group(func(r chi.Router) {
		r.Use(LoginLimiter())
		params.AuthHandler.MountRoutes(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(params.RBAC.RequireAuth)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, auth.HomePath, http.StatusSeeOther)
		})
		params.AuthHandler.MountProtected(r)
		if params.SettingsHandler != nil {
			params.SettingsHandler.MountRoutes(r)
		}
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(r)
		}
		if params.CustomersHandler != nil {
			params.CustomersHandler.MountRoutes(r)
		}
		if params.ConnectionsHandler != nil {
			params.ConnectionsHandler.MountRoutes(r)
		}
		if params.PackagesHandler != nil {
			params.PackagesHandler.MountRoutes(r)
		}
		if params.InventoryHandler != nil {
			params.InventoryHandler.MountRoutes(r)
		}
		if params.PaymentsHandler != nil {
			params.PaymentsHandler.MountRoutes(r)
		}
		if params.EmployeesHandler != nil {
			params.EmployeesHandler.MountRoutes(r)
		}
		if params.InvoiceHandler != nil {
			params.InvoiceHandler.MountRoutes(r)
		}
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
