package netmon

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultPollInterval is the default tick cadence of the sampling loop.
const DefaultPollInterval = time.Second

// unavailableText is the rate text emitted while no interface is bound.
const unavailableText = "unavailable"

// State identifies whether the monitor currently holds an active binding.
type State string

const (
	// StateUnbound means no binding exists; every tick retries selection.
	StateUnbound State = "unbound"
	// StateBound means a binding exists and is being sampled.
	StateBound State = "bound"
)

// Options configures a Monitor. The zero value selects production defaults.
type Options struct {
	// Prober supplies interface enumeration and counters.
	// Defaults to SystemProber.
	Prober Prober

	// PollInterval is the tick cadence. Defaults to DefaultPollInterval.
	PollInterval time.Duration

	// WarmupDelay is the counter warm-up pause on open. Zero selects
	// DefaultWarmupDelay; a negative value disables the delay entirely.
	WarmupDelay time.Duration

	// PreferredInterface optionally overrides the first-match selection
	// policy with a fixed interface name.
	PreferredInterface string

	// Clock drives the ticker and the warm-up delay. Defaults to the real
	// clock.
	Clock clock.Clock
}

// Monitor is the sampling loop. It owns at most one active binding and
// drives selection, sampling, formatting and status emission from a single
// fixed-interval ticker. All failures after a successful Start degrade to an
// unavailable status and self-heal; no runtime error escapes the loop.
type Monitor struct {
	prober   Prober
	selector *Selector
	clk      clock.Clock
	interval time.Duration
	warmup   time.Duration

	// mu serializes ticks and guards all fields below; overlapping ticks
	// cannot occur.
	mu        sync.Mutex
	state     State
	binding   *CounterSource
	selection Selection
	boundAt   time.Time
	onStatus  func(Status)

	stopChan chan struct{}
	started  bool
	stopped  bool
}

// NewMonitor creates a sampling loop with the given options.
func NewMonitor(opts Options) *Monitor {
	if opts.Prober == nil {
		opts.Prober = SystemProber{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	switch {
	case opts.WarmupDelay == 0:
		opts.WarmupDelay = DefaultWarmupDelay
	case opts.WarmupDelay < 0:
		opts.WarmupDelay = 0
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}

	return &Monitor{
		prober:   opts.Prober,
		selector: NewSelector(opts.Prober, opts.PreferredInterface),
		clk:      opts.Clock,
		interval: opts.PollInterval,
		warmup:   opts.WarmupDelay,
		state:    StateUnbound,
		stopChan: make(chan struct{}),
	}
}

// OnStatus registers the consumer invoked once per tick with the formatted
// status. The callback runs on the sampling goroutine and must return
// promptly; it must not call back into the monitor.
func (m *Monitor) OnStatus(callback func(Status)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStatus = callback
}

// State returns the current binding state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start performs the initial selection attempt and begins ticking. An error
// is returned only when that very first initialization fails; the caller
// should treat it as fatal. Every failure after a successful Start degrades
// to an unavailable status and is retried automatically. Calling Start on a
// running monitor is a no-op.
func (m *Monitor) Start() error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	err := m.tickLocked()
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("initial interface binding: %w", err)
	}

	go m.run()
	slog.Info("Monitor started", "interval", m.interval)
	return nil
}

// Stop halts ticking and releases any open binding. Safe to call more than
// once; the second call is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return
	}
	m.stopped = true
	close(m.stopChan)
	m.unbindLocked()
	slog.Info("Monitor stopped")
}

// run is the ticker loop. It exits when Stop closes the stop channel.
func (m *Monitor) run() {
	ticker := m.clk.Ticker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

// tick advances the state machine by one step. Ticks are serialized by mu.
func (m *Monitor) tick() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return nil
	}
	return m.tickLocked()
}

// tickLocked implements one tick of the state machine. Caller holds mu.
//
// Unbound: attempt to bind. The tick that binds emits no sample because the
// warm-up read was discarded and no window exists yet; a failed attempt
// emits the unavailable status and is retried next tick.
//
// Bound: check liveness first, then sample. A failed liveness probe unbinds
// and emits unavailable on the same tick. A failed counter read unbinds and
// attempts one immediate re-selection before the next scheduled tick,
// emitting unavailable only if that retry also fails.
func (m *Monitor) tickLocked() error {
	if m.state == StateUnbound {
		if err := m.bindLocked(); err != nil {
			m.emitUnavailable()
			return err
		}
		return nil
	}

	if !m.selector.HasQualifyingInterface() {
		slog.Info("Monitored interface no longer qualifies",
			"interface", m.selection.Interface.Name)
		m.unbindLocked()
		m.emitUnavailable()
		return nil
	}

	sample, err := m.binding.Sample()
	if err != nil {
		slog.Warn("Counter read failed, rebinding",
			"instance", m.selection.Instance, "error", err)
		m.unbindLocked()
		if rerr := m.bindLocked(); rerr != nil {
			m.emitUnavailable()
		}
		return nil
	}

	m.emitSample(sample)
	return nil
}

// bindLocked runs selection and opens a counter source. Caller holds mu.
func (m *Monitor) bindLocked() error {
	sel, err := m.selector.Select()
	if err != nil {
		slog.Debug("Interface selection failed", "error", err)
		return err
	}

	src, err := OpenCounterSource(m.prober, sel.Instance, m.warmup, m.clk)
	if err != nil {
		slog.Debug("Counter open failed", "instance", sel.Instance, "error", err)
		return err
	}

	m.binding = src
	m.selection = sel
	m.state = StateBound
	m.boundAt = m.clk.Now()
	slog.Info("Bound to interface",
		"interface", sel.Interface.Name,
		"instance", sel.Instance,
		"match", sel.Match)
	return nil
}

// unbindLocked closes and forgets the active binding. Caller holds mu.
func (m *Monitor) unbindLocked() {
	if m.binding != nil {
		m.binding.Close()
		m.binding = nil
	}
	m.selection = Selection{}
	m.state = StateUnbound
}

func (m *Monitor) emitSample(sample RateSample) {
	down := FormatRate(sample.DownBytesPerSec)
	up := FormatRate(sample.UpBytesPerSec)
	rx, tx := m.binding.SessionTotals()

	m.emitStatus(Status{
		DownText:       down,
		UpText:         up,
		Tooltip:        clampTooltip(fmt.Sprintf("↓ %s  ↑ %s (%s)", down, up, m.selection.Interface.Name)),
		Healthy:        true,
		Interface:      m.selection.Interface.Name,
		Match:          m.selection.Match,
		SessionRxBytes: rx,
		SessionTxBytes: tx,
		Uptime:         m.clk.Now().Sub(m.boundAt),
	})
}

func (m *Monitor) emitUnavailable() {
	m.emitStatus(Status{
		DownText: unavailableText,
		UpText:   unavailableText,
		Tooltip:  clampTooltip("network throughput unavailable"),
		Healthy:  false,
	})
}

func (m *Monitor) emitStatus(st Status) {
	if m.onStatus != nil {
		m.onStatus(st)
	}
}
