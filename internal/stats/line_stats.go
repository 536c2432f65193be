// Package stats collects per-run statistics about captured child
// output: line counts, line lengths, and the gaps between lines.
// Quantiles come from T-Digest sketches so a chatty child does not
// cost unbounded memory.
package stats

import (
	"sync"
	"time"

	"github.com/influxdata/tdigest"
)

// LineStats accumulates line statistics for one wrapper run. Safe for
// concurrent use.
type LineStats struct {
	mu sync.Mutex

	lines         int64
	bytes         int64
	forcedFlushes int64

	minLen int // -1 = unset
	maxLen int

	lastLine time.Time

	lengthDigest *tdigest.TDigest // line length in bytes
	gapDigest    *tdigest.TDigest // inter-line gap in nanoseconds
}

// NewLineStats creates an empty accumulator.
func NewLineStats() *LineStats {
	return &LineStats{
		minLen:       -1, // -1 = unset
		lengthDigest: tdigest.NewWithCompression(100), // ~100 centroids, ~10KB
		gapDigest:    tdigest.NewWithCompression(100),
	}
}

// RecordLine records one emitted line of n content bytes.
func (s *LineStats) RecordLine(n int) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines++
	s.bytes += int64(n)

	if s.minLen == -1 || n < s.minLen {
		s.minLen = n
	}
	if n > s.maxLen {
		s.maxLen = n
	}

	s.lengthDigest.Add(float64(n), 1)
	if !s.lastLine.IsZero() {
		s.gapDigest.Add(float64(now.Sub(s.lastLine).Nanoseconds()), 1)
	}
	s.lastLine = now
}

// RecordForcedFlush records that a line was emitted because the
// reassembly buffer filled without a newline. The line itself is still
// counted through RecordLine.
func (s *LineStats) RecordForcedFlush() {
	s.mu.Lock()
	s.forcedFlushes++
	s.mu.Unlock()
}

// Summary is a point-in-time view of the accumulated statistics.
type Summary struct {
	Lines         int64
	Bytes         int64
	ForcedFlushes int64

	MinLineLen int // 0 when no lines seen
	MaxLineLen int
	AvgLineLen float64

	LineLenP50 float64
	LineLenP95 float64
	LineLenP99 float64

	GapP50 time.Duration
	GapP95 time.Duration
	GapP99 time.Duration
}

// Summarize computes a snapshot. Quantiles are zero until enough lines
// have been seen.
func (s *LineStats) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{
		Lines:         s.lines,
		Bytes:         s.bytes,
		ForcedFlushes: s.forcedFlushes,
		MaxLineLen:    s.maxLen,
	}
	if s.minLen != -1 {
		summary.MinLineLen = s.minLen
	}
	if s.lines > 0 {
		summary.AvgLineLen = float64(s.bytes) / float64(s.lines)
		summary.LineLenP50 = s.lengthDigest.Quantile(0.50)
		summary.LineLenP95 = s.lengthDigest.Quantile(0.95)
		summary.LineLenP99 = s.lengthDigest.Quantile(0.99)
	}
	if s.lines > 1 {
		summary.GapP50 = time.Duration(s.gapDigest.Quantile(0.50))
		summary.GapP95 = time.Duration(s.gapDigest.Quantile(0.95))
		summary.GapP99 = time.Duration(s.gapDigest.Quantile(0.99))
	}
	return summary
}

// LogFields returns the summary as alternating key/value pairs for
// structured logging.
func (s Summary) LogFields() []any {
	return []any{
		"lines", s.Lines,
		"bytes", s.Bytes,
		"forced_flushes", s.ForcedFlushes,
		"line_len_min", s.MinLineLen,
		"line_len_max", s.MaxLineLen,
		"line_len_p50", s.LineLenP50,
		"line_len_p95", s.LineLenP95,
		"line_len_p99", s.LineLenP99,
		"gap_p50", s.GapP50.String(),
		"gap_p95", s.GapP95.String(),
		"gap_p99", s.GapP99.String(),
	}
}
