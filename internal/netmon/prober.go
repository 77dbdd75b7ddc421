package netmon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// sysfsNetPath is the base path for network interface metadata.
const sysfsNetPath = "/sys/class/net"

// Prober abstracts the host's interface enumeration and live counter
// subsystem so selection and sampling logic can run against test doubles.
type Prober interface {
	// Interfaces enumerates host network interfaces in OS-defined order.
	// The order is not guaranteed stable between calls.
	Interfaces() ([]InterfaceInfo, error)

	// CounterInstances lists the instance names currently exposed by the
	// throughput counter subsystem.
	CounterInstances() ([]string, error)

	// OpenCounters opens the live byte counters for one instance name.
	// The returned handle is owned by the caller and must be closed.
	OpenCounters(instance string) (CounterHandle, error)
}

// CounterHandle is an open pair of cumulative byte counters for one
// interface. Read returns the counters' current totals; a failed read on a
// previously working handle signals a stale or removed instance.
type CounterHandle interface {
	Read() (rxBytes, txBytes uint64, err error)
	Close() error
}

// SystemProber reads interfaces and counters from the running host via
// gopsutil. The zero value is ready to use.
type SystemProber struct{}

// Interfaces enumerates the host's network interfaces.
func (SystemProber) Interfaces() ([]InterfaceInfo, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return nil, err
	}

	infos := make([]InterfaceInfo, 0, len(ifaces))
	for _, iface := range ifaces {
		info := InterfaceInfo{
			Name: iface.Name,
			Up:   hasFlag(iface.Flags, "up"),
			Kind: classifyInterface(iface.Name),
		}
		if hasFlag(iface.Flags, "loopback") {
			info.Kind = KindOther
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// CounterInstances lists the per-interface counter names.
func (SystemProber) CounterInstances() ([]string, error) {
	counters, err := psnet.IOCounters(true)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(counters))
	for _, c := range counters {
		names = append(names, c.Name)
	}
	return names, nil
}

// OpenCounters opens the byte counters for one instance. A probe read is
// performed so that a stale instance fails at open rather than on the first
// sample.
func (SystemProber) OpenCounters(instance string) (CounterHandle, error) {
	h := &systemHandle{instance: instance}
	if _, _, err := h.Read(); err != nil {
		return nil, err
	}
	return h, nil
}

// systemHandle reads one instance out of the per-interface IO counters.
// A handle belongs to a single binding and is never shared, so the closed
// flag needs no locking.
type systemHandle struct {
	instance string
	closed   bool
}

func (h *systemHandle) Read() (uint64, uint64, error) {
	if h.closed {
		return 0, 0, ErrSourceClosed
	}

	counters, err := psnet.IOCounters(true)
	if err != nil {
		return 0, 0, err
	}
	for _, c := range counters {
		if c.Name == h.instance {
			return c.BytesRecv, c.BytesSent, nil
		}
	}
	return 0, 0, fmt.Errorf("counter instance %q disappeared", h.instance)
}

func (h *systemHandle) Close() error {
	h.closed = true
	return nil
}

// virtualPrefixes identifies loopback, tunnel, bridge and other virtual
// interfaces that never qualify for monitoring.
var virtualPrefixes = []string{
	"lo", "ppp", "tun", "tap", "veth", "docker", "br-", "virbr", "wg",
	"vnet", "bond", "dummy", "zt",
}

// classifyInterface maps an interface name to its kind. Wireless detection
// uses the sysfs wireless directory; names with a known virtual prefix are
// Other; the remainder is assumed to be wired ethernet.
func classifyInterface(name string) InterfaceKind {
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(name, prefix) {
			return KindOther
		}
	}
	if _, err := os.Stat(filepath.Join(sysfsNetPath, name, "wireless")); err == nil {
		return KindWireless
	}
	return KindEthernet
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}
