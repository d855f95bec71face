package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the console and the print worker.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"60s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	BackendBaseURL string        `envconfig:"BACKEND_BASE_URL" default:"http://127.0.0.1:5000/api"`
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"15s"`
	// BackendRefreshPath enables refresh-and-retry on 401 when set.
	BackendRefreshPath string `envconfig:"BACKEND_REFRESH_PATH"`

	PaymentWidgetOrigins []string `envconfig:"PAYMENT_WIDGET_ORIGINS" default:"https://js.stripe.com,https://api.stripe.com"`

	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`

	DashboardCacheTTL time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"60s"`

	PrinterConfig    string `envconfig:"PRINTER_CONFIG" default:"configs/printers.yaml"`
	ReceiptPrinterID string `envconfig:"RECEIPT_PRINTER_ID"`

	OfficeAddress string `envconfig:"OFFICE_ADDRESS" default:"Dehli chowk national laboratory"`
	Helpline      string `envconfig:"HELPLINE" default:"03336881973"`
}

// WorkerConfig is the subset the print worker needs. It carries no secrets.
type WorkerConfig struct {
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	PrinterConfig string `envconfig:"PRINTER_CONFIG" default:"configs/printers.yaml"`
	Concurrency   int    `envconfig:"WORKER_CONCURRENCY" default:"2"`
	MetricsAddr   string `envconfig:"WORKER_METRICS_ADDR" default:":9091"`
}

// LoadWorkerConfig reads the worker settings from environment variables.
func LoadWorkerConfig() (*WorkerConfig, error) {
	var cfg WorkerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if _, err := cfg.BackendOrigin(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// BackendOrigin returns scheme://host of BACKEND_BASE_URL.
func (c *Config) BackendOrigin() (string, error) {
	u, err := url.Parse(strings.TrimSpace(c.BackendBaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid BACKEND_BASE_URL %q", c.BackendBaseURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// ContentSecurityPolicy allows same-origin resources, the backend host and
// the payment widget origins, nothing else.
func (c *Config) ContentSecurityPolicy() string {
	connect := []string{"'self'"}
	scripts := []string{"'self'"}
	frames := []string{}
	if origin, err := c.BackendOrigin(); err == nil {
		connect = append(connect, origin)
	}
	for _, o := range c.PaymentWidgetOrigins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		connect = append(connect, o)
		scripts = append(scripts, o)
		frames = append(frames, o)
	}
	directives := []string{
		"default-src 'self'",
		"script-src " + strings.Join(scripts, " "),
		"connect-src " + strings.Join(connect, " "),
		"img-src 'self' data:",
		"style-src 'self' 'unsafe-inline'",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}
	if len(frames) > 0 {
		directives = append(directives, "frame-src "+strings.Join(frames, " "))
	}
	return strings.Join(directives, "; ")
}
