package timeseries

import (
	"sync"
	"testing"
	"time"
)

// mockClock provides deterministic time for testing.
type mockClock struct {
	mu   sync.Mutex
	time time.Time
}

func newMockClock(t time.Time) *mockClock {
	return &mockClock{time: t}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.time
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time = c.time.Add(d)
}

func TestRateTracker_Add(t *testing.T) {
	tests := []struct {
		name      string
		adds      [][2]int // lines, bytes
		wantLines int64
		wantBytes int64
	}{
		{
			name:      "single add",
			adds:      [][2]int{{1, 80}},
			wantLines: 1,
			wantBytes: 80,
		},
		{
			name:      "multiple adds",
			adds:      [][2]int{{1, 100}, {1, 200}, {1, 300}},
			wantLines: 3,
			wantBytes: 600,
		},
		{
			name:      "zero values ignored",
			adds:      [][2]int{{1, 100}, {0, 0}, {1, 200}},
			wantLines: 2,
			wantBytes: 300,
		},
		{
			name:      "negative values ignored",
			adds:      [][2]int{{1, 100}, {-1, -50}, {1, 200}},
			wantLines: 2,
			wantBytes: 300,
		},
		{
			name:      "empty",
			adds:      [][2]int{},
			wantLines: 0,
			wantBytes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newMockClock(time.Now())
			tracker := NewRateTrackerWithClock(clock)

			for _, add := range tt.adds {
				tracker.Add(add[0], add[1])
			}

			stats := tracker.GetStats()
			if stats.TotalLines != tt.wantLines {
				t.Errorf("TotalLines = %d, want %d", stats.TotalLines, tt.wantLines)
			}
			if stats.TotalBytes != tt.wantBytes {
				t.Errorf("TotalBytes = %d, want %d", stats.TotalBytes, tt.wantBytes)
			}
		})
	}
}

func TestRateTracker_ConstantRate(t *testing.T) {
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := newMockClock(baseTime)
	tracker := NewRateTrackerWithClock(clock)

	// 10 lines of 100 bytes per second for 30 seconds.
	for i := 0; i < 30; i++ {
		tracker.Add(10, 1000)
		clock.Advance(1 * time.Second)
		tracker.RecordSample()
	}

	stats := tracker.GetStats()

	if stats.Lines1s < 9 || stats.Lines1s > 11 {
		t.Errorf("Lines1s = %f, want ~10", stats.Lines1s)
	}
	if stats.Bytes10s < 900 || stats.Bytes10s > 1100 {
		t.Errorf("Bytes10s = %f, want ~1000", stats.Bytes10s)
	}
	if stats.LinesOverall < 9 || stats.LinesOverall > 11 {
		t.Errorf("LinesOverall = %f, want ~10", stats.LinesOverall)
	}
}

func TestRateTracker_BurstThenIdle(t *testing.T) {
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := newMockClock(baseTime)
	tracker := NewRateTrackerWithClock(clock)

	// Burst: 100 lines in the first second.
	tracker.Add(100, 10000)
	clock.Advance(1 * time.Second)
	tracker.RecordSample()

	// Idle for 20 seconds.
	for i := 0; i < 20; i++ {
		clock.Advance(1 * time.Second)
		tracker.RecordSample()
	}

	stats := tracker.GetStats()

	// Short window has no recent activity.
	if stats.Lines1s != 0 {
		t.Errorf("Lines1s after idle = %f, want 0", stats.Lines1s)
	}
	// Long window still remembers the burst.
	if stats.Lines60s <= 0 {
		t.Errorf("Lines60s = %f, want > 0", stats.Lines60s)
	}
}

func TestRateTracker_RingBufferBounded(t *testing.T) {
	clock := newMockClock(time.Now())
	tracker := NewRateTrackerWithClock(clock)

	for i := 0; i < ringBufferSize*2; i++ {
		clock.Advance(1 * time.Second)
		tracker.RecordSample()
	}

	if got := tracker.SampleCount(); got != ringBufferSize {
		t.Errorf("SampleCount() = %d, want %d", got, ringBufferSize)
	}
}

func TestRateTracker_NoSamplesYet(t *testing.T) {
	clock := newMockClock(time.Now())
	tracker := NewRateTrackerWithClock(clock)

	tracker.Add(5, 500)

	// GetStats with only the initial sample must not panic or divide
	// by zero.
	stats := tracker.GetStats()
	if stats.TotalLines != 5 {
		t.Errorf("TotalLines = %d, want 5", stats.TotalLines)
	}
}

func TestRateTracker_ConcurrentAdds(t *testing.T) {
	tracker := NewRateTracker()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				tracker.Add(1, 10)
			}
		}()
	}
	wg.Wait()

	stats := tracker.GetStats()
	if stats.TotalLines != 8000 {
		t.Errorf("TotalLines = %d, want 8000", stats.TotalLines)
	}
	if stats.TotalBytes != 80000 {
		t.Errorf("TotalBytes = %d, want 80000", stats.TotalBytes)
	}
}
