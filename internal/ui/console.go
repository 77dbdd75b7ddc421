package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/shini4i/netspeed-tray/internal/netmon"
)

// ConsoleSink writes each monitor status as a single line. It backs the
// --console mode, where neither GTK nor a system tray is available.
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink creates a console sink writing to w, or stderr when w is nil.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleSink{w: w}
}

// Consume writes one status line. Intended as the monitor's OnStatus callback.
func (s *ConsoleSink) Consume(st netmon.Status) {
	fmt.Fprintln(s.w, consoleLine(st))
}

// consoleLine renders a status as a fixed-shape line, e.g.
// "eth0  ↓ 2.0 KB/s  ↑ 512.0 B/s" or "--  unavailable".
func consoleLine(st netmon.Status) string {
	if !st.Healthy {
		return "--  unavailable"
	}
	return fmt.Sprintf("%s  ↓ %s  ↑ %s", st.Interface, st.DownText, st.UpText)
}
