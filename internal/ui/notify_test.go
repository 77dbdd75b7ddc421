package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotifier(t *testing.T) {
	// NewNotifier with nil app should work (used in tests)
	notifier := NewNotifier(nil)
	assert.NotNil(t, notifier)
	assert.True(t, notifier.IsEnabled(), "notifier should be enabled by default")
}

func TestNotifier_SetEnabled(t *testing.T) {
	notifier := NewNotifier(nil)

	// Default is enabled
	assert.True(t, notifier.IsEnabled())

	// Disable
	notifier.SetEnabled(false)
	assert.False(t, notifier.IsEnabled())

	// Re-enable
	notifier.SetEnabled(true)
	assert.True(t, notifier.IsEnabled())
}

func TestNotifier_Notify_DisabledNotifier(t *testing.T) {
	notifier := NewNotifier(nil)
	notifier.SetEnabled(false)

	// Should not panic when disabled
	notifier.Notify(NotifyDegraded, "")
	notifier.Notify(NotifyRecovered, "eth0")
}

func TestNotifier_Notify_NilApp(t *testing.T) {
	notifier := NewNotifier(nil)

	// Should not panic with nil app
	notifier.Notify(NotifyDegraded, "")
	notifier.Notify(NotifyRecovered, "eth0")
}

func TestNotifier_Notify_InvalidType(t *testing.T) {
	notifier := NewNotifier(nil)

	// Invalid notification type should return early without panic
	notifier.Notify(NotificationType(999), "eth0")
}

func TestNotifier_ConvenienceMethods_NilApp(t *testing.T) {
	notifier := NewNotifier(nil)

	// Convenience methods should not panic with nil app
	notifier.NotifyDegraded()
	notifier.NotifyRecovered("eth0")
}
