// Package netmon implements continuous network throughput sampling: it
// selects the machine's active network interface, polls its byte counters at
// a fixed cadence, converts the counters into per-second rates and pushes a
// formatted status to the presentation layer, recovering on its own when the
// interface disappears or the counter subsystem misbehaves.
package netmon

import "time"

// InterfaceKind classifies a network interface by its physical type.
type InterfaceKind string

const (
	// KindEthernet is a wired interface.
	KindEthernet InterfaceKind = "ethernet"
	// KindWireless is a Wi-Fi interface.
	KindWireless InterfaceKind = "wireless"
	// KindOther covers loopback, tunnels, bridges and anything else that
	// never qualifies for monitoring.
	KindOther InterfaceKind = "other"
)

// InterfaceInfo describes one host network interface at enumeration time.
// Descriptors are transient: they are re-enumerated on every selection run
// and never cached across selection cycles.
type InterfaceInfo struct {
	// Name is the OS interface name (e.g. "eth0", "wlan0").
	Name string
	// Up reports the operational status at enumeration time.
	Up bool
	// Kind is the classified interface type.
	Kind InterfaceKind
}

// Qualifies reports whether the interface is eligible for monitoring:
// operationally up and of a wired or wireless kind.
func (i InterfaceInfo) Qualifies() bool {
	return i.Up && (i.Kind == KindEthernet || i.Kind == KindWireless)
}

// RateSample is one windowed throughput measurement. A sample is valid for
// exactly one tick and is never retained across ticks.
type RateSample struct {
	// DownBytesPerSec is the receive rate, always >= 0.
	DownBytesPerSec float64
	// UpBytesPerSec is the transmit rate, always >= 0.
	UpBytesPerSec float64
}

// MatchKind records how the selected interface was paired with a counter
// instance name.
type MatchKind string

const (
	// MatchExact means the instance name equals the interface name
	// (case-insensitively).
	MatchExact MatchKind = "exact"
	// MatchSubstring means one name contains the other
	// (case-insensitively, in either direction).
	MatchSubstring MatchKind = "substring"
	// MatchFallback means no name matched and the first available instance
	// was taken best-effort; the monitored adapter may not be the selected
	// interface.
	MatchFallback MatchKind = "fallback"
)

// Selection is the result of a successful interface selection: one
// interface descriptor resolved to a counter instance name.
type Selection struct {
	// Interface is the selected interface descriptor.
	Interface InterfaceInfo
	// Instance is the counter instance name the interface resolved to.
	Instance string
	// Match records the quality of the name pairing.
	Match MatchKind
}

// Status is the sole artifact crossing into the presentation layer, emitted
// once per tick. While no interface is bound the rate texts carry the
// literal "unavailable" and Healthy is false; a stale or zero sample is
// never passed off as real traffic.
type Status struct {
	// DownText is the formatted receive rate (e.g. "2.0 KB/s").
	DownText string
	// UpText is the formatted transmit rate.
	UpText string
	// Tooltip is a one-line summary, at most TooltipMaxLen characters.
	Tooltip string
	// Healthy reports whether an active binding produced this status.
	Healthy bool

	// The fields below are informational extras for richer consumers and
	// are zero-valued while unhealthy.

	// Interface is the name of the monitored interface.
	Interface string
	// Match is the selection match quality.
	Match MatchKind
	// SessionRxBytes is the total bytes received since the binding opened.
	SessionRxBytes uint64
	// SessionTxBytes is the total bytes transmitted since the binding opened.
	SessionTxBytes uint64
	// Uptime is the time elapsed since the binding opened.
	Uptime time.Duration
}
