package app

import (
	"os"
	"strconv"
)

// TestModeEnv is set by the test harness so the binaries exit before dialing
// Redis or the backend.
const TestModeEnv = "CONSOLE_TEST_MODE"

// InTestMode reports whether CONSOLE_TEST_MODE holds a true value.
func InTestMode() bool {
	on, err := strconv.ParseBool(os.Getenv(TestModeEnv))
	return err == nil && on
}
