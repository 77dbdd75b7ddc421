package netmon

import "errors"

var (
	// ErrNoActiveInterface is returned when no operationally-up ethernet or
	// wireless interface exists on the host.
	ErrNoActiveInterface = errors.New("no active ethernet or wireless interface")

	// ErrCounterCategoryUnavailable is returned when the throughput counter
	// subsystem cannot be enumerated at all.
	ErrCounterCategoryUnavailable = errors.New("network counter subsystem unavailable")

	// ErrNoMatchingCounterInstance is returned when the counter subsystem
	// exposes no instance names, leaving no fallback candidate.
	ErrNoMatchingCounterInstance = errors.New("no counter instances available")

	// ErrCounterRead is returned when reading an open counter binding fails.
	ErrCounterRead = errors.New("counter read failed")

	// ErrSourceClosed is returned when sampling a closed counter source.
	ErrSourceClosed = errors.New("counter source is closed")
)
