// Package timeseries provides time-windowed rate tracking for captured
// child output.
//
// It tracks cumulative lines and bytes and computes rolling averages
// over configurable windows (1s, 10s, 60s).
//
// Thread-safe: Add() uses atomic int64, GetStats() acquires read lock.
// Memory: a fixed ring of 120 samples (two minutes at 1 sample/sec).
package timeseries

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	// ringBufferSize is the number of samples to retain (2 minutes at 1 sample/sec)
	ringBufferSize = 120

	// Window durations for rolling averages
	window1s  = 1 * time.Second
	window10s = 10 * time.Second
	window60s = 60 * time.Second
)

// Clock interface for testing with deterministic time.
type Clock interface {
	Now() time.Time
}

// realClock uses time.Now() for production.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// sample is a point-in-time snapshot of the cumulative counters.
type sample struct {
	timestamp time.Time
	lines     int64
	bytes     int64
}

// RateTracker tracks cumulative captured lines and bytes and computes
// rolling per-second rates.
//
// Usage:
//
//	tracker := NewRateTracker()
//	tracker.Add(1, len(line))  // Called per captured line (thread-safe, lock-free)
//	// ... periodic sampling (e.g., every 1s via ticker)
//	tracker.RecordSample()
//	// ... get stats for TUI/summary
//	stats := tracker.GetStats()
type RateTracker struct {
	totalLines atomic.Int64
	totalBytes atomic.Int64

	// Ring buffer of samples for rolling average calculation
	samples  []sample
	writeIdx int
	mu       sync.RWMutex

	startTime time.Time

	clock Clock
}

// RateStats contains computed rolling rates at a point in time.
type RateStats struct {
	TotalLines int64
	TotalBytes int64

	// Rolling rates (per second)
	Lines1s  float64
	Lines10s float64
	Lines60s float64
	Bytes1s  float64
	Bytes10s float64
	Bytes60s float64

	// Overall averages since tracking started
	LinesOverall float64
	BytesOverall float64
}

// NewRateTracker creates a new tracker with real clock.
func NewRateTracker() *RateTracker {
	return NewRateTrackerWithClock(realClock{})
}

// NewRateTrackerWithClock creates a tracker with a custom clock for
// testing.
func NewRateTrackerWithClock(clock Clock) *RateTracker {
	now := clock.Now()
	t := &RateTracker{
		samples:   make([]sample, 0, ringBufferSize),
		startTime: now,
		clock:     clock,
	}
	// Initial sample at t=0 with zero counters
	t.samples = append(t.samples, sample{timestamp: now})
	return t
}

// Add records lines captured lines totaling bytes content bytes.
// Thread-safe and lock-free.
func (t *RateTracker) Add(lines, bytes int) {
	if lines > 0 {
		t.totalLines.Add(int64(lines))
	}
	if bytes > 0 {
		t.totalBytes.Add(int64(bytes))
	}
}

// RecordSample records the current cumulative counters with a
// timestamp. Call this periodically (e.g., every second via ticker).
func (t *RateTracker) RecordSample() {
	now := t.clock.Now()
	newSample := sample{
		timestamp: now,
		lines:     t.totalLines.Load(),
		bytes:     t.totalBytes.Load(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.samples) < ringBufferSize {
		t.samples = append(t.samples, newSample)
	} else {
		t.samples[t.writeIdx] = newSample
		t.writeIdx = (t.writeIdx + 1) % ringBufferSize
	}
}

// GetStats computes and returns current rate statistics. Always
// returns valid data, using whatever history is available.
func (t *RateTracker) GetStats() RateStats {
	now := t.clock.Now()
	lines := t.totalLines.Load()
	bytes := t.totalBytes.Load()

	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := RateStats{
		TotalLines: lines,
		TotalBytes: bytes,
	}

	elapsed := now.Sub(t.startTime).Seconds()
	if elapsed > 0 {
		stats.LinesOverall = float64(lines) / elapsed
		stats.BytesOverall = float64(bytes) / elapsed
	}

	stats.Lines1s, stats.Bytes1s = t.rateOverWindow(now, lines, bytes, window1s)
	stats.Lines10s, stats.Bytes10s = t.rateOverWindow(now, lines, bytes, window10s)
	stats.Lines60s, stats.Bytes60s = t.rateOverWindow(now, lines, bytes, window60s)

	return stats
}

// rateOverWindow calculates per-second rates over the given window.
// Must be called with mu held (at least RLock).
func (t *RateTracker) rateOverWindow(now time.Time, lines, bytes int64, window time.Duration) (float64, float64) {
	if len(t.samples) == 0 {
		return 0, 0
	}

	targetTime := now.Add(-window)

	// Find the sample closest to (but not after) targetTime.
	var best *sample
	var bestDiff time.Duration = -1

	for i := range t.samples {
		s := &t.samples[i]
		if s.timestamp.After(targetTime) {
			continue
		}
		diff := targetTime.Sub(s.timestamp)
		if bestDiff < 0 || diff < bestDiff {
			best = s
			bestDiff = diff
		}
	}

	// If no sample precedes the window, use the oldest we have.
	if best == nil {
		best = t.oldestSample()
	}
	if best == nil {
		return 0, 0
	}

	actualElapsed := now.Sub(best.timestamp).Seconds()
	if actualElapsed <= 0 {
		return 0, 0
	}

	return float64(lines-best.lines) / actualElapsed,
		float64(bytes-best.bytes) / actualElapsed
}

// oldestSample returns the oldest sample in the ring buffer.
// Must be called with mu held.
func (t *RateTracker) oldestSample() *sample {
	if len(t.samples) == 0 {
		return nil
	}
	if len(t.samples) < ringBufferSize {
		return &t.samples[0]
	}
	// Buffer full - oldest is at writeIdx (next to be overwritten)
	return &t.samples[t.writeIdx]
}

// SampleCount returns the number of samples in the ring buffer.
// Useful for testing.
func (t *RateTracker) SampleCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.samples)
}
