// SPDX-License-Identifier: Apache-2.0

// assetclass classifies OCR text from equipment nameplates into asset types
// and catalog equipment.
//
// Usage:
//
//	assetclass classify [--trace] [-o text|json|yaml] [file...]
//	assetclass validate --assets <file> [--equipment <file>]
//	assetclass serve
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
