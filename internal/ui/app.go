package ui

import (
	"log/slog"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"

	"github.com/shini4i/netspeed-tray/internal/config"
	"github.com/shini4i/netspeed-tray/internal/netmon"
)

const (
	// AppID is the application identifier following reverse DNS notation.
	AppID = "com.github.shini4i.netspeed-tray"
)

// Version is the application version, set at build time via ldflags.
var Version = "dev"

// AppConfig holds command-line overrides for creating a new App instance.
// Zero values defer to the persisted configuration.
type AppConfig struct {
	// PollInterval overrides the configured sampling cadence.
	PollInterval time.Duration
	// PreferredInterface overrides the configured interface preference.
	PreferredInterface string
}

// App represents the main application controller.
// It manages the GTK application lifecycle and wires the monitor to the
// tray, window and notifier.
type App struct {
	app    *adw.Application
	window *RateWindow
	tray   *TrayIcon

	// Services
	configManager *config.Manager
	monitor       *netmon.Monitor

	// Notification manager
	notifier *Notifier

	// Health transition tracking; touched only from the sampling goroutine.
	sawStatus   bool
	lastHealthy bool
}

// NewApp creates a new application instance with the given overrides.
func NewApp(cfg *AppConfig) (*App, error) {
	configManager, err := config.NewManager()
	if err != nil {
		return nil, err
	}

	fileCfg := configManager.GetConfig()
	interval := time.Duration(fileCfg.PollIntervalSeconds) * time.Second
	preferred := fileCfg.PreferredInterface
	if cfg != nil {
		if cfg.PollInterval > 0 {
			interval = cfg.PollInterval
		}
		if cfg.PreferredInterface != "" {
			preferred = cfg.PreferredInterface
		}
	}

	monitor := netmon.NewMonitor(netmon.Options{
		PollInterval:       interval,
		PreferredInterface: preferred,
	})

	return &App{
		configManager: configManager,
		monitor:       monitor,
	}, nil
}

// Run starts the GTK application and blocks until it exits.
// Returns the exit code from the GTK application.
func (a *App) Run(args []string) int {
	a.app = adw.NewApplication(AppID, gio.ApplicationFlagsNone)

	a.app.ConnectActivate(func() {
		a.onActivate()
	})

	a.app.ConnectShutdown(func() {
		a.onShutdown()
	})

	return a.app.Run(args)
}

// onActivate is called when the application is activated. It builds the
// surfaces, wires the monitor and starts sampling; a failure of the very
// first interface binding is fatal and terminates the application.
func (a *App) onActivate() {
	if a.notifier == nil {
		a.notifier = NewNotifier(a.app)
		a.notifier.SetEnabled(a.configManager.GetConfig().ShowNotifications)
	}

	if a.tray == nil {
		a.initTray()
	}

	if a.window == nil {
		a.window = NewRateWindow(a.app)
	}

	// Keep app running even when the window is hidden (tray mode)
	a.app.Hold()

	a.monitor.OnStatus(a.handleStatus)
	if err := a.monitor.Start(); err != nil {
		slog.Error("Failed to start monitoring", "error", err)
		a.Quit()
		return
	}

	if !a.configManager.GetConfig().StartHidden {
		a.window.Present()
	}
}

// handleStatus fans one monitor status out to every surface. It runs on the
// sampling goroutine; the surfaces dispatch GTK work themselves.
func (a *App) handleStatus(st netmon.Status) {
	if a.tray != nil {
		a.tray.SetStatus(st)
	}
	if a.window != nil {
		a.window.SetStatus(st)
	}

	if a.sawStatus && st.Healthy != a.lastHealthy {
		if st.Healthy {
			a.notifier.NotifyRecovered(st.Interface)
		} else {
			a.notifier.NotifyDegraded()
		}
	}
	a.sawStatus = true
	a.lastHealthy = st.Healthy
}

// initTray initializes the system tray icon and its callbacks.
func (a *App) initTray() {
	a.tray = NewTrayIcon()

	// Errors are logged but not propagated - these are programmer errors
	// that should never occur since callbacks are always set before Run
	if err := a.tray.OnShow(func() {
		if a.window != nil {
			a.window.Present()
		}
	}); err != nil {
		slog.Error("Failed to register tray show callback", "error", err)
	}

	if err := a.tray.OnQuit(func() {
		a.Quit()
	}); err != nil {
		slog.Error("Failed to register tray quit callback", "error", err)
	}

	go func() {
		if err := a.tray.Run(); err != nil {
			slog.Error("System tray failed", "error", err)
		}
	}()
}

// onShutdown is called when the application is shutting down.
func (a *App) onShutdown() {
	a.monitor.Stop()
}

// Quit terminates the application gracefully.
func (a *App) Quit() {
	if a.tray != nil {
		a.tray.Quit()
	}
	if a.app != nil {
		a.app.Quit()
	}
}
