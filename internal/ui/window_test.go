package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shini4i/netspeed-tray/internal/netmon"
)

// GTK widgets need a display, so only the pure rendering helper is tested.

func TestWindowDetailText_Healthy(t *testing.T) {
	st := netmon.Status{
		Healthy:        true,
		Interface:      "eth0",
		SessionRxBytes: 3 * 1024 * 1024 / 2,
		SessionTxBytes: 512,
		Uptime:         time.Minute + 5*time.Second,
	}

	assert.Equal(t, "eth0 · ↓ 1.5 MB ↑ 512 B · 1m 5s", windowDetailText(st))
}

func TestWindowDetailText_Unavailable(t *testing.T) {
	st := netmon.Status{Healthy: false}
	assert.Equal(t, "no active network interface", windowDetailText(st))
}
