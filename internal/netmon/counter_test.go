package netmon

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCounterSource_DiscardsBaselineRead(t *testing.T) {
	p := newWorkingProber()
	clk := clock.NewMock()

	src, err := OpenCounterSource(p, "eth0", 0, clk)
	require.NoError(t, err)
	defer src.Close()

	require.Len(t, p.handles, 1)
	assert.Equal(t, 1, p.handles[0].reads, "open performs exactly one baseline read")
}

func TestCounterSource_SampleComputesWindowedRates(t *testing.T) {
	p := newWorkingProber()
	clk := clock.NewMock()

	src, err := OpenCounterSource(p, "eth0", 0, clk)
	require.NoError(t, err)
	defer src.Close()

	p.rx += 2048
	p.tx += 512
	clk.Add(time.Second)

	sample, err := src.Sample()
	require.NoError(t, err)
	assert.InDelta(t, 2048, sample.DownBytesPerSec, 0.001)
	assert.InDelta(t, 512, sample.UpBytesPerSec, 0.001)

	// Over a 2-second window the same delta halves.
	p.rx += 2048
	p.tx += 512
	clk.Add(2 * time.Second)

	sample, err = src.Sample()
	require.NoError(t, err)
	assert.InDelta(t, 1024, sample.DownBytesPerSec, 0.001)
	assert.InDelta(t, 256, sample.UpBytesPerSec, 0.001)
}

func TestCounterSource_ZeroElapsedReportsZero(t *testing.T) {
	p := newWorkingProber()
	clk := clock.NewMock()

	src, err := OpenCounterSource(p, "eth0", 0, clk)
	require.NoError(t, err)
	defer src.Close()

	p.rx += 4096
	sample, err := src.Sample()
	require.NoError(t, err)
	assert.Zero(t, sample.DownBytesPerSec)
	assert.Zero(t, sample.UpBytesPerSec)
}

func TestCounterSource_CounterResetClampsToZero(t *testing.T) {
	p := newWorkingProber()
	clk := clock.NewMock()

	src, err := OpenCounterSource(p, "eth0", 0, clk)
	require.NoError(t, err)
	defer src.Close()

	p.rx = 10 // counter reset below the baseline
	p.tx += 512
	clk.Add(time.Second)

	sample, err := src.Sample()
	require.NoError(t, err)
	assert.Zero(t, sample.DownBytesPerSec, "a reset counter reports zero, never negative")
	assert.InDelta(t, 512, sample.UpBytesPerSec, 0.001)
}

func TestCounterSource_SessionTotals(t *testing.T) {
	p := newWorkingProber()
	clk := clock.NewMock()

	src, err := OpenCounterSource(p, "eth0", 0, clk)
	require.NoError(t, err)
	defer src.Close()

	p.rx += 3000
	p.tx += 700
	clk.Add(time.Second)
	_, err = src.Sample()
	require.NoError(t, err)

	rx, tx := src.SessionTotals()
	assert.Equal(t, uint64(3000), rx)
	assert.Equal(t, uint64(700), tx)
}

func TestCounterSource_ReadErrorWrapsErrCounterRead(t *testing.T) {
	p := newWorkingProber()
	clk := clock.NewMock()

	src, err := OpenCounterSource(p, "eth0", 0, clk)
	require.NoError(t, err)
	defer src.Close()

	p.readErr = errors.New("instance is stale")
	_, err = src.Sample()
	assert.ErrorIs(t, err, ErrCounterRead)
}

func TestCounterSource_CloseIsIdempotent(t *testing.T) {
	p := newWorkingProber()

	src, err := OpenCounterSource(p, "eth0", 0, clock.NewMock())
	require.NoError(t, err)

	src.Close()
	src.Close()
	assert.Equal(t, 1, p.handles[0].closes, "the handle is released exactly once")

	_, err = src.Sample()
	assert.ErrorIs(t, err, ErrSourceClosed)
}

func TestOpenCounterSource_OpenFailure(t *testing.T) {
	p := newWorkingProber()
	p.openErr = errors.New("category gone")

	_, err := OpenCounterSource(p, "eth0", 0, clock.NewMock())
	assert.Error(t, err)
	assert.Empty(t, p.handles, "no handle leaks when open fails")
}

func TestOpenCounterSource_BaselineReadFailureClosesHandle(t *testing.T) {
	p := newWorkingProber()
	p.readErr = errors.New("instance is stale")

	_, err := OpenCounterSource(p, "eth0", 0, clock.NewMock())
	require.Error(t, err)
	require.Len(t, p.handles, 1)
	assert.Equal(t, 1, p.handles[0].closes, "a failed warm-up releases the handle")
}
