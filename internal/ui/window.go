package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/shini4i/netspeed-tray/internal/netmon"
)

const (
	windowDefaultWidth  = 300
	windowDefaultHeight = 140

	// Subtle dimming without being invisible in dark themes
	dimmedOpacity = 0.7
)

// RateWindow is a compact window showing the current rates in large labels
// with a one-line summary underneath. Closing it hides it; the app keeps
// running in the tray.
type RateWindow struct {
	window *adw.ApplicationWindow

	downLabel   *gtk.Label
	upLabel     *gtk.Label
	detailLabel *gtk.Label

	healthy bool
}

// NewRateWindow creates the rate window for the given application.
func NewRateWindow(app *adw.Application) *RateWindow {
	w := &RateWindow{}
	w.setupWindow(app)
	w.setupLayout()
	return w
}

// setupWindow creates and configures the application window.
func (w *RateWindow) setupWindow(app *adw.Application) {
	w.window = adw.NewApplicationWindow(&app.Application)
	w.window.SetTitle("NetSpeed")
	w.window.SetDefaultSize(windowDefaultWidth, windowDefaultHeight)

	// Handle window close: hide instead of quit (app stays in tray)
	w.window.ConnectCloseRequest(func() bool {
		// Use IdleAdd to ensure hide happens on GTK main thread
		glib.IdleAdd(func() {
			w.window.SetVisible(false)
		})
		return true // Prevent default close behavior
	})
}

// setupLayout builds the two rate labels and the detail line.
func (w *RateWindow) setupLayout() {
	box := gtk.NewBox(gtk.OrientationVertical, 8)
	box.SetMarginTop(12)
	box.SetMarginBottom(12)

	rates := gtk.NewBox(gtk.OrientationHorizontal, 16)
	rates.SetHAlign(gtk.AlignCenter)

	w.downLabel = gtk.NewLabel("↓ --")
	w.downLabel.AddCSSClass("title-2")
	rates.Append(w.downLabel)

	sep := gtk.NewSeparator(gtk.OrientationVertical)
	rates.Append(sep)

	w.upLabel = gtk.NewLabel("↑ --")
	w.upLabel.AddCSSClass("title-2")
	rates.Append(w.upLabel)

	box.Append(rates)

	w.detailLabel = gtk.NewLabel("waiting for first sample")
	w.detailLabel.SetHAlign(gtk.AlignCenter)
	w.detailLabel.SetOpacity(dimmedOpacity)
	box.Append(w.detailLabel)

	w.window.SetContent(box)
}

// SetStatus renders a monitor status. Safe to call from the sampling
// goroutine; GTK mutation is dispatched via glib.IdleAdd.
func (w *RateWindow) SetStatus(st netmon.Status) {
	glib.IdleAdd(func() {
		w.downLabel.SetLabel("↓ " + st.DownText)
		w.upLabel.SetLabel("↑ " + st.UpText)
		w.detailLabel.SetLabel(windowDetailText(st))

		if st.Healthy != w.healthy {
			w.healthy = st.Healthy
			w.detailLabel.RemoveCSSClass("success")
			w.detailLabel.RemoveCSSClass("error")
			if st.Healthy {
				w.detailLabel.AddCSSClass("success")
			} else {
				w.detailLabel.AddCSSClass("error")
			}
		}
	})
}

// Present shows and raises the window.
func (w *RateWindow) Present() {
	glib.IdleAdd(func() {
		w.window.SetVisible(true)
		w.window.Present()
	})
}

// windowDetailText renders the one-line summary under the rate labels.
func windowDetailText(st netmon.Status) string {
	if !st.Healthy {
		return "no active network interface"
	}
	return fmt.Sprintf("%s · ↓ %s ↑ %s · %s",
		st.Interface,
		netmon.FormatBytes(st.SessionRxBytes),
		netmon.FormatBytes(st.SessionTxBytes),
		netmon.FormatDuration(st.Uptime))
}
