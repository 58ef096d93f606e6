package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, reportdata.ErrInvalid) {
			fmt.Fprintln(os.Stderr, "render:", err)
		}
		os.Exit(1)
	}
}
