// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// cropctl runs the recommendation service in-process for operators.
//
// Usage:
//
//	cropctl recommend --state Punjab --district Ludhiana [--season rabi_early] [--top-k 5] [--native]
//	cropctl native --state Punjab --district Ludhiana [--season kharif]
//	cropctl seasons
//	cropctl districts [state]
//	cropctl cache warm|purge
//	cropctl cache invalidate --state Punjab --district Ludhiana [--season zaid]
//	cropctl auth hash-password < password.txt
//	cropctl auth token [--username ops]
//
// Configuration is read the same way as the server (config.yaml, CONFIG_PATH,
// environment). Cache commands act on the configured native store: they
// refuse the memory store, which no other process can see, and warn for
// badger, whose directory lock fails while the server runs. Use redis to
// manage the cache of a live server.
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
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
