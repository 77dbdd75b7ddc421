package netmon

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultWarmupDelay is the pause between opening a counter handle and the
// throwaway baseline read.
const DefaultWarmupDelay = time.Second

// CounterSource wraps an open counter handle and turns its cumulative byte
// counters into per-second rates over the window since the previous read.
// A source belongs to exactly one binding and is not safe for concurrent
// use; the sampling loop is its only caller.
type CounterSource struct {
	handle CounterHandle
	clk    clock.Clock

	baselineRx uint64
	baselineTx uint64
	lastRx     uint64
	lastTx     uint64
	lastTime   time.Time

	closed bool
}

// OpenCounterSource opens the counters for instance and warms them up. The
// first read from a freshly opened rate counter has no preceding window to
// average over, so after the warm-up delay one read is taken and discarded
// as the baseline; without it the first reported value would falsely show
// zero traffic. A warmup of zero skips the delay but still takes the
// baseline read.
func OpenCounterSource(prober Prober, instance string, warmup time.Duration, clk clock.Clock) (*CounterSource, error) {
	if clk == nil {
		clk = clock.New()
	}

	handle, err := prober.OpenCounters(instance)
	if err != nil {
		return nil, fmt.Errorf("open counters for %q: %w", instance, err)
	}

	if warmup > 0 {
		clk.Sleep(warmup)
	}

	rx, tx, err := handle.Read()
	if err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("warm-up read for %q: %w", instance, err)
	}

	return &CounterSource{
		handle:     handle,
		clk:        clk,
		baselineRx: rx,
		baselineTx: tx,
		lastRx:     rx,
		lastTx:     tx,
		lastTime:   clk.Now(),
	}, nil
}

// Sample returns the throughput rates over the window since the previous
// read, clamped to >= 0. A counter reset (a reading lower than the previous
// one) reports as zero rather than a negative rate.
func (c *CounterSource) Sample() (RateSample, error) {
	if c.closed {
		return RateSample{}, ErrSourceClosed
	}

	rx, tx, err := c.handle.Read()
	if err != nil {
		return RateSample{}, fmt.Errorf("%w: %v", ErrCounterRead, err)
	}

	now := c.clk.Now()
	elapsed := now.Sub(c.lastTime).Seconds()

	var sample RateSample
	if elapsed > 0 {
		if rx >= c.lastRx {
			sample.DownBytesPerSec = float64(rx-c.lastRx) / elapsed
		}
		if tx >= c.lastTx {
			sample.UpBytesPerSec = float64(tx-c.lastTx) / elapsed
		}
	}

	c.lastRx = rx
	c.lastTx = tx
	c.lastTime = now

	return sample, nil
}

// SessionTotals returns the bytes received and transmitted since the source
// was opened. Counter resets report as zero until the counters catch up.
func (c *CounterSource) SessionTotals() (rx, tx uint64) {
	if c.lastRx >= c.baselineRx {
		rx = c.lastRx - c.baselineRx
	}
	if c.lastTx >= c.baselineTx {
		tx = c.lastTx - c.baselineTx
	}
	return rx, tx
}

// Close releases the underlying handle. Safe to call more than once.
func (c *CounterSource) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if err := c.handle.Close(); err != nil {
		slog.Debug("Failed to close counter handle", "error", err)
	}
}
