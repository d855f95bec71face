package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netline-isp/isp-console/internal/receipt"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
)

// SettingsHandler serves the profile page and the sign-out confirmation.
type SettingsHandler struct {
	logger *slog.Logger
	view   view.Responder
	queue  receipt.Queue
	footer receipt.Footer
}

// NewSettingsHandler constructs a SettingsHandler. A nil queue hides the
// printer test.
func NewSettingsHandler(logger *slog.Logger, responder view.Responder, queue receipt.Queue, footer receipt.Footer) *SettingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{logger: logger, view: responder, queue: queue, footer: footer}
}

// MountRoutes registers /settings routes.
func (h *SettingsHandler) MountRoutes(r chi.Router) {
	r.Get("/settings", h.show)
	r.Get("/settings/logout", h.confirmLogout)
	r.Post("/settings/test-print", h.testPrint)
}

type settingsPage struct {
	User       *shared.CurrentUser
	CanPrint   bool
	TestSample receipt.Receipt
}

func (h *SettingsHandler) show(w http.ResponseWriter, r *http.Request) {
	user := shared.CurrentUserFromContext(r.Context())
	h.view.Render(w, r, "pages/settings", "Settings", settingsPage{
		User:       user,
		CanPrint:   h.queue != nil,
		TestSample: TestReceipt(h.footer),
	}, http.StatusOK)
}

func (h *SettingsHandler) confirmLogout(w http.ResponseWriter, r *http.Request) {
	h.view.Confirm(w, r, view.ConfirmPage{
		Title:       "Logout",
		Message:     "Are you sure you want to logout?",
		Action:      "/auth/logout",
		ActionLabel: "Logout",
		CancelHref:  "/settings",
		Danger:      true,
	})
}

func (h *SettingsHandler) testPrint(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		h.view.RedirectWithFlash(w, r, "/settings", "error", "Receipt printer is not configured")
		return
	}
	jobID, err := h.queue.PrintReceipt(r.Context(), TestReceipt(h.footer))
	switch {
	case errors.Is(err, receipt.ErrNoPrinter):
		h.view.RedirectWithFlash(w, r, "/settings", "error", "Receipt printer is not configured")
	case err != nil:
		h.logger.Error("queue test receipt failed", slog.Any("error", err))
		h.view.RedirectWithFlash(w, r, "/settings", "error", "Failed to send receipt to printer")
	default:
		h.logger.Info("test receipt queued", slog.String("job", jobID))
		h.view.RedirectWithFlash(w, r, "/settings", "success", "Test receipt sent to printer")
	}
}

// TestReceipt is the sample slip used to check the printer alignment.
func TestReceipt(footer receipt.Footer) receipt.Receipt {
	return receipt.Receipt{
		Title: "Test Receipt",
		Table: &receipt.Table{
			Headers: [3]string{"Item", "Qty", "Price"},
			Rows: [][3]string{
				{"Item A", "1", "Rs 100.00"},
				{"Item B", "2", "Rs 200.00"},
				{"Item C", "1", "Rs 200.00"},
			},
		},
		Total:    receipt.Line{Label: "Total", Value: "Rs 500.00"},
		Messages: []string{"Thank you for shopping!"},
		Footer:   footer,
	}
}
