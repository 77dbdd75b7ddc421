package netmon

import (
	"fmt"
	"strings"
)

// Selector picks the interface to monitor and resolves it to a counter
// instance name. Enumeration order is OS-defined; when several interfaces
// qualify, the first one wins, which is an accepted nondeterminism.
type Selector struct {
	prober    Prober
	preferred string
}

// NewSelector creates a selector backed by the given prober. If preferred is
// non-empty and names a qualifying interface, it wins over enumeration
// order; otherwise the normal first-match policy applies.
func NewSelector(prober Prober, preferred string) *Selector {
	return &Selector{prober: prober, preferred: preferred}
}

// HasQualifyingInterface reports whether at least one operationally-up
// ethernet or wireless interface exists right now, independent of any open
// binding. This is the liveness probe run before each sample: it catches
// interface removal promptly, before a counter read would return stale data.
func (s *Selector) HasQualifyingInterface() bool {
	ifaces, err := s.prober.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Qualifies() {
			return true
		}
	}
	return false
}

// Select applies the selection policy:
//
//  1. Filter enumerated interfaces to up + {ethernet, wireless}; empty set
//     fails with ErrNoActiveInterface.
//  2. The preferred interface wins if it qualifies, else the first
//     qualifying interface is taken.
//  3. Enumerate counter instance names; an enumeration failure is
//     ErrCounterCategoryUnavailable, an empty list is
//     ErrNoMatchingCounterInstance.
//  4. Pair the interface with an instance: case-insensitive equality first,
//     then case-insensitive substring containment in either direction
//     (the enumeration API and the counter API format the same adapter name
//     differently on some hosts).
//  5. When nothing matches, fall back to the first instance. The monitored
//     adapter may then be unrelated to the selected interface; callers can
//     observe this through MatchFallback.
func (s *Selector) Select() (Selection, error) {
	ifaces, err := s.prober.Interfaces()
	if err != nil {
		return Selection{}, fmt.Errorf("enumerate interfaces: %w", err)
	}

	var selected InterfaceInfo
	found := false
	if s.preferred != "" {
		for _, iface := range ifaces {
			if iface.Name == s.preferred && iface.Qualifies() {
				selected = iface
				found = true
				break
			}
		}
	}
	if !found {
		for _, iface := range ifaces {
			if iface.Qualifies() {
				selected = iface
				found = true
				break
			}
		}
	}
	if !found {
		return Selection{}, ErrNoActiveInterface
	}

	instances, err := s.prober.CounterInstances()
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %v", ErrCounterCategoryUnavailable, err)
	}
	if len(instances) == 0 {
		return Selection{}, ErrNoMatchingCounterInstance
	}

	for _, inst := range instances {
		if strings.EqualFold(inst, selected.Name) {
			return Selection{Interface: selected, Instance: inst, Match: MatchExact}, nil
		}
	}
	for _, inst := range instances {
		if containsFold(inst, selected.Name) || containsFold(selected.Name, inst) {
			return Selection{Interface: selected, Instance: inst, Match: MatchSubstring}, nil
		}
	}

	return Selection{Interface: selected, Instance: instances[0], Match: MatchFallback}, nil
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
