// Package main provides the entry point for netspeed-tray.
// netspeed-tray continuously samples the active network interface's
// throughput and shows the current download/upload rates in the system tray,
// a compact window, or on the console.
package main

import (
	"log/slog"
	"os"

	"github.com/shini4i/netspeed-tray/internal/logging"
)

func main() {
	// Initialize structured logging
	logging.SetupFromEnv()

	app := newCliApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}
