// Package testing prepares the environment for packages whose tests touch
// configuration. Import it for its side effects.
package testing

import (
	"os"
	stdtesting "testing"
)

var testDefaults = map[string]string{
	"CONSOLE_TEST_MODE": "1",
	"BACKEND_BASE_URL":  "http://127.0.0.1:0/api",
	"GOTENBERG_URL":     "http://127.0.0.1:0",
	"SESSION_SECRET":    "test-session-secret-0123456789abcdef",
	"CSRF_SECRET":       "test-csrf-secret-0123456789abcdef",
}

func init() {
	for key, value := range testDefaults {
		if _, set := os.LookupEnv(key); !set {
			_ = os.Setenv(key, value)
		}
	}
}

// TestMain can be reused by packages that want the defaults and nothing more.
func TestMain(m *stdtesting.M) {
	os.Exit(m.Run())
}
