package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/netline-isp/isp-console/internal/app"
	"github.com/netline-isp/isp-console/internal/auth"
	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/connections"
	"github.com/netline-isp/isp-console/internal/customers"
	"github.com/netline-isp/isp-console/internal/dashboard"
	"github.com/netline-isp/isp-console/internal/employees"
	"github.com/netline-isp/isp-console/internal/inventory"
	"github.com/netline-isp/isp-console/internal/invoice"
	"github.com/netline-isp/isp-console/internal/observability"
	"github.com/netline-isp/isp-console/internal/packages"
	"github.com/netline-isp/isp-console/internal/payments"
	"github.com/netline-isp/isp-console/internal/platform/cache"
	"github.com/netline-isp/isp-console/internal/rbac"
	"github.com/netline-isp/isp-console/internal/receipt"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
	"github.com/netline-isp/isp-console/jobs"
	"github.com/netline-isp/isp-console/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "console_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	validator := shared.NewValidator()

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	responder := view.Responder{Logger: logger, Templates: templates, CSRF: csrfManager}
	rbacMiddleware := rbac.Middleware{
		Logger:    logger,
		Forbidden: responder.Forbidden,
		SignedOut: responder.SignedOut,
		LoginPath: view.LoginPath,
	}

	metrics := observability.NewMetrics()

	client := backend.New(cfg.BackendBaseURL,
		backend.WithTokenSource(shared.AccessTokenFromContext),
		backend.WithTimeout(cfg.BackendTimeout),
		backend.WithMetrics(backend.NewMetrics(metrics.Registerer())),
		backend.WithLogger(logger),
	)
	if refresher := backend.NewSessionRefresher(client, cfg.BackendRefreshPath); refresher != nil {
		backend.WithRefresher(refresher)(client)
	}

	footer := receipt.Footer{Address: cfg.OfficeAddress, Helpline: cfg.Helpline}

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	var receiptQueue receipt.Queue
	if cfg.ReceiptPrinterID != "" {
		receiptQueue = jobs.NewReceiptQueue(jobClient, cfg.ReceiptPrinterID)
	} else {
		logger.Info("RECEIPT_PRINTER_ID not set, thermal printing disabled")
	}

	pdfClient := report.NewClient(cfg.GotenbergURL)
	if err := pdfClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg unreachable, invoice PDFs will fail", slog.Any("error", err))
	}

	var dashboardCache *cache.JSONCache
	if cfg.DashboardCacheTTL > 0 {
		dashboardCache = cache.NewJSONCache(redisClient, "dashboard", cfg.DashboardCacheTTL)
	}
	dashboardHandler := dashboard.NewHandler(logger,
		dashboard.NewService(dashboard.NewRepository(client), dashboardCache, logger),
		responder,
	)

	customerHandler := customers.NewHandler(logger, customers.NewRepository(client), responder, validator,
		customers.WithChangeHook(dashboardHandler.ChangeHook),
	)

	paymentOpts := []payments.Option{
		payments.WithFooter(footer),
		payments.WithChangeHook(dashboardHandler.ChangeHook),
	}
	invoiceOpts := []invoice.Option{}
	if receiptQueue != nil {
		paymentOpts = append(paymentOpts, payments.WithReceiptQueue(receiptQueue))
		invoiceOpts = append(invoiceOpts, invoice.WithReceiptQueue(receiptQueue))
	}
	paymentHandler := payments.NewHandler(logger, payments.NewRepository(client), responder, validator, paymentOpts...)
	invoiceHandler := invoice.NewHandler(logger, invoice.NewRenderer(templates, pdfClient, footer), responder, validator, invoiceOpts...)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		RBAC:               rbacMiddleware,
		Metrics:            metrics,
		AuthHandler:        auth.NewHandler(logger, auth.NewService(client), responder, validator),
		SettingsHandler:    auth.NewSettingsHandler(logger, responder, receiptQueue, footer),
		DashboardHandler:   dashboardHandler,
		CustomersHandler:   customerHandler,
		ConnectionsHandler: connections.NewHandler(logger, connections.NewRepository(client), responder, validator, rbacMiddleware),
		PackagesHandler:    packages.NewHandler(logger, packages.NewRepository(client), responder, validator),
		InventoryHandler:   inventory.NewHandler(logger, inventory.NewRepository(client), responder, validator),
		PaymentsHandler:    paymentHandler,
		EmployeesHandler:   employees.NewHandler(logger, employees.NewRepository(client), responder, validator, rbacMiddleware),
		InvoiceHandler:     invoiceHandler,
		JobHandler:         jobs.NewHandler(inspector, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("backend", cfg.BackendBaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
