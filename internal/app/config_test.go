package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/receipt"
)

func receiptFooter() receipt.Footer {
	return receipt.Footer{Address: "Dehli chowk national laboratory", Helpline: "03336881973"}
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("CSRF_SECRET", "c")
	t.Setenv("BACKEND_BASE_URL", "https://api.netline.pk/api")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "Dehli chowk national laboratory", cfg.OfficeAddress)
	assert.Equal(t, []string{"https://js.stripe.com", "https://api.stripe.com"}, cfg.PaymentWidgetOrigins)
	origin, err := cfg.BackendOrigin()
	require.NoError(t, err)
	assert.Equal(t, "https://api.netline.pk", origin)
}

func TestLoadConfigRejectsRelativeBackend(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("CSRF_SECRET", "c")
	t.Setenv("BACKEND_BASE_URL", "/api")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestContentSecurityPolicy(t *testing.T) {
	cfg := &Config{
		BackendBaseURL:       "http://127.0.0.1:5000/api",
		PaymentWidgetOrigins: []string{"https://js.stripe.com", " "},
	}
	csp := cfg.ContentSecurityPolicy()

	assert.Contains(t, csp, "connect-src 'self' http://127.0.0.1:5000 https://js.stripe.com")
	assert.Contains(t, csp, "script-src 'self' https://js.stripe.com")
	assert.Contains(t, csp, "frame-src https://js.stripe.com")
	assert.Contains(t, csp, "form-action 'self'")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel(" Warning ").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
}
