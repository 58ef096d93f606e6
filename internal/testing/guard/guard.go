// Package guard switches binaries into test mode when imported by tests and
// keeps report output out of the working tree.
package guard

import (
	"os"
	"path/filepath"
)

func init() {
	setDefault("FARMREPORT_TEST_MODE", "1")
	setDefault("REPORT_STORAGE_DIR", filepath.Join(os.TempDir(), "farmreport-test"))
	setDefault("LOGO_PATH", "")
}

func setDefault(key, value string) {
	if _, ok := os.LookupEnv(key); !ok {
		_ = os.Setenv(key, value)
	}
}
