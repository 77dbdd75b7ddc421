// Package ui provides the tray, window and notification surfaces that
// consume the monitor's per-tick status.
package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/systray"

	"github.com/shini4i/netspeed-tray/internal/netmon"
)

var (
	// ErrTrayAlreadyRunning is returned when attempting to modify callbacks after Run() has been called.
	ErrTrayAlreadyRunning = errors.New("cannot modify callbacks after TrayIcon.Run() is called")
	// ErrTrayRunTwice is returned when Run() is called more than once.
	ErrTrayRunTwice = errors.New("TrayIcon.Run() called twice")
	// ErrTrayMissingCallbacks is returned when Run() is called without all required callbacks set.
	ErrTrayMissingCallbacks = errors.New("all callbacks (OnShow, OnQuit) must be set before calling Run()")
)

// TrayIcon manages the system tray icon and menu. It is a passive consumer:
// the monitor pushes a status once per tick via SetStatus.
type TrayIcon struct {
	mu sync.RWMutex

	// Last received status
	status netmon.Status

	// Menu items
	menuRates     *systray.MenuItem
	menuInterface *systray.MenuItem
	menuSession   *systray.MenuItem
	menuShow      *systray.MenuItem
	menuQuit      *systray.MenuItem

	// Callbacks - must be set before Run() is called
	onShow func()
	onQuit func()

	// Icons (set once in NewTrayIcon, read-only after initialization)
	iconHealthy  []byte
	iconDegraded []byte

	// Done channel to signal goroutine termination
	done chan struct{}

	// Lifecycle flags
	running   bool
	closeOnce sync.Once
}

// NewTrayIcon creates a new system tray icon manager.
func NewTrayIcon() *TrayIcon {
	return &TrayIcon{
		iconHealthy:  iconHealthyPNG,
		iconDegraded: iconDegradedPNG,
		done:         make(chan struct{}),
	}
}

// OnShow registers a callback for when Show Window is clicked in tray.
// Must be called before Run(). Returns ErrTrayAlreadyRunning if called after Run().
func (t *TrayIcon) OnShow(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrTrayAlreadyRunning
	}
	t.onShow = callback
	return nil
}

// OnQuit registers a callback for when Quit is clicked in tray.
// Must be called before Run(). Returns ErrTrayAlreadyRunning if called after Run().
func (t *TrayIcon) OnQuit(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrTrayAlreadyRunning
	}
	t.onQuit = callback
	return nil
}

// SetStatus updates the icon, tooltip and menu from a monitor status.
// Safe to call from the sampling goroutine, also before the tray is ready.
func (t *TrayIcon) SetStatus(st netmon.Status) {
	t.mu.Lock()
	t.status = st
	t.mu.Unlock()
	t.updateIcon()
	t.updateMenu()
}

// Run starts the system tray icon. This should be called in a goroutine
// as it blocks until the tray is closed. All callbacks (OnShow, OnQuit)
// must be registered before calling Run().
// Returns ErrTrayMissingCallbacks if any callback is not set.
// Returns ErrTrayRunTwice if called more than once.
func (t *TrayIcon) Run() error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrTrayRunTwice
	}

	if t.onShow == nil || t.onQuit == nil {
		t.mu.Unlock()
		return ErrTrayMissingCallbacks
	}

	t.running = true
	t.mu.Unlock()

	systray.Run(t.onReady, t.onExit)
	return nil
}

// Quit closes the system tray icon and terminates the click handler goroutine.
// Safe to call multiple times.
func (t *TrayIcon) Quit() {
	t.closeOnce.Do(func() {
		close(t.done)
		systray.Quit()
	})
}

// onReady is called when the tray is ready to be configured.
func (t *TrayIcon) onReady() {
	systray.SetIcon(t.iconDegraded)
	systray.SetTitle("NetSpeed")
	systray.SetTooltip("netspeed-tray")

	t.menuRates = systray.AddMenuItem("↓ --  ↑ --", "Current transfer rates")
	t.menuRates.Disable()

	t.menuInterface = systray.AddMenuItem("No interface", "Monitored network interface")
	t.menuInterface.Disable()

	t.menuSession = systray.AddMenuItem("", "Bytes transferred since binding")
	t.menuSession.Disable()
	t.menuSession.Hide()

	systray.AddSeparator()

	t.menuShow = systray.AddMenuItem("Show Window", "Show the rates window")
	t.menuQuit = systray.AddMenuItem("Quit", "Quit the application")

	// Handle menu clicks in a goroutine
	go t.handleMenuClicks()

	slog.Info("System tray initialized")

	// Render whatever status arrived before the tray became ready.
	t.updateIcon()
	t.updateMenu()
}

// onExit is called when the tray is being closed.
func (t *TrayIcon) onExit() {
	slog.Info("System tray closed")
}

// handleMenuClicks processes menu item clicks.
func (t *TrayIcon) handleMenuClicks() {
	for {
		select {
		case <-t.done:
			return
		case _, ok := <-t.menuShow.ClickedCh:
			if !ok {
				return
			}
			if t.onShow != nil {
				t.onShow()
			}
		case _, ok := <-t.menuQuit.ClickedCh:
			if !ok {
				return
			}
			if t.onQuit != nil {
				t.onQuit()
			}
		}
	}
}

// updateIcon updates the tray icon, title and tooltip from the last status.
func (t *TrayIcon) updateIcon() {
	if t.menuRates == nil {
		return // Not initialized yet
	}

	t.mu.RLock()
	st := t.status
	t.mu.RUnlock()

	if st.Healthy {
		systray.SetIcon(t.iconHealthy)
		systray.SetTitle(fmt.Sprintf("↓ %s  ↑ %s", st.DownText, st.UpText))
	} else {
		systray.SetIcon(t.iconDegraded)
		systray.SetTitle("NetSpeed")
	}
	if st.Tooltip != "" {
		systray.SetTooltip(st.Tooltip)
	}
}

// updateMenu updates the menu items from the last status.
func (t *TrayIcon) updateMenu() {
	if t.menuRates == nil {
		return // Not initialized yet
	}

	t.mu.RLock()
	st := t.status
	t.mu.RUnlock()

	if !st.Healthy {
		t.menuRates.SetTitle("↓ unavailable  ↑ unavailable")
		t.menuInterface.SetTitle("No interface")
		t.menuSession.Hide()
		return
	}

	t.menuRates.SetTitle(fmt.Sprintf("↓ %s  ↑ %s", st.DownText, st.UpText))

	ifaceText := st.Interface
	if st.Match == netmon.MatchFallback {
		// Make the degraded pairing visible instead of pretending the
		// counters belong to the selected interface.
		ifaceText += " (approximate counters)"
	}
	t.menuInterface.SetTitle(ifaceText)

	t.menuSession.SetTitle(fmt.Sprintf("Session: ↓ %s  ↑ %s  (%s)",
		netmon.FormatBytes(st.SessionRxBytes),
		netmon.FormatBytes(st.SessionTxBytes),
		netmon.FormatDuration(st.Uptime)))
	t.menuSession.Show()
}
