package app

import (
	"os"
	"strconv"
)

// TestModeEnv is set by test helpers so the server and worker binaries return
// before opening Postgres, Redis or a browser.
const TestModeEnv = "FARMREPORT_TEST_MODE"

// InTestMode reports whether TestModeEnv holds a true value.
func InTestMode() bool {
	on, err := strconv.ParseBool(os.Getenv(TestModeEnv))
	return err == nil && on
}
