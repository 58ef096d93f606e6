// Package testing puts the process into test mode before any runtime starts.
// Blank-import it from tests that load configuration.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("FARMREPORT_TEST_MODE", "1")
		for key, value := range map[string]string{
			"GOTENBERG_URL": "http://127.0.0.1:0",
			"RASTERIZER":    "gotenberg",
			"CHART_ENGINE":  "svg",
		} {
			if os.Getenv(key) == "" {
				_ = os.Setenv(key, value)
			}
		}
	})
}

func init() {
	ensureTestMode()
}

// TestMain runs m with the test-mode environment in place.
func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
