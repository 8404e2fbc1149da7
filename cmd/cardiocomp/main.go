// SPDX-License-Identifier: MIT

// Command cardiocomp estimates the four vascular compliances of a named
// physiological preset by running the coordinate-descent minimizer and
// printing Csa, Csv, Cpa and Cpv.
//
// Usage:
//
//	cardiocomp --mode healthy --vol 5 --numit 10000
//	cardiocomp presets
//	cardiocomp describe --mode hypertension
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
