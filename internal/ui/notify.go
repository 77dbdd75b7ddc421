package ui

import (
	"log/slog"
	"sync/atomic"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// NotificationType identifies the type of notification to display.
type NotificationType int

const (
	// NotifyDegraded indicates monitoring lost its interface.
	NotifyDegraded NotificationType = iota
	// NotifyRecovered indicates monitoring rebound to an interface.
	NotifyRecovered
)

// Notifier manages desktop notifications for monitor health transitions.
// All methods are safe for concurrent access.
type Notifier struct {
	app     *adw.Application
	enabled atomic.Bool
}

// NewNotifier creates a new notification manager.
// The app parameter should be a GTK Application that supports sending notifications.
func NewNotifier(app *adw.Application) *Notifier {
	n := &Notifier{
		app: app,
	}
	n.enabled.Store(true)
	return n
}

// SetEnabled enables or disables notifications.
// This method is safe for concurrent access.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// IsEnabled returns whether notifications are enabled.
// This method is safe for concurrent access.
func (n *Notifier) IsEnabled() bool {
	return n.enabled.Load()
}

// Notify sends a desktop notification.
// This method is safe to call from any goroutine - GTK operations are
// dispatched to the main thread via glib.IdleAdd().
func (n *Notifier) Notify(notifyType NotificationType, interfaceName string) {
	if !n.enabled.Load() || n.app == nil {
		return
	}

	var title, body, icon string

	switch notifyType {
	case NotifyDegraded:
		title = "Network Monitoring Degraded"
		body = "No active network interface available"
		icon = "network-offline-symbolic"
	case NotifyRecovered:
		title = "Network Monitoring Restored"
		body = "Monitoring " + interfaceName
		icon = "network-transmit-receive-symbolic"
	default:
		return
	}

	// Dispatch GTK operations to main thread - GTK is not thread-safe
	glib.IdleAdd(func() {
		notification := gio.NewNotification(title)
		notification.SetBody(body)
		notification.SetIcon(gio.NewThemedIcon(icon))

		// Use one ID so health notifications replace each other
		notificationID := "monitor-health"
		n.app.SendNotification(notificationID, notification)

		slog.Debug("Notification sent", "title", title, "body", body)
	})
}

// NotifyDegraded sends a degraded notification.
func (n *Notifier) NotifyDegraded() {
	n.Notify(NotifyDegraded, "")
}

// NotifyRecovered sends a recovered notification.
func (n *Notifier) NotifyRecovered(interfaceName string) {
	n.Notify(NotifyRecovered, interfaceName)
}
