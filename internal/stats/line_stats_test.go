package stats

import (
	"sync"
	"testing"
)

func TestLineStatsEmpty(t *testing.T) {
	s := NewLineStats()
	summary := s.Summarize()

	if summary.Lines != 0 {
		t.Errorf("Lines = %d, want 0", summary.Lines)
	}
	if summary.MinLineLen != 0 || summary.MaxLineLen != 0 {
		t.Errorf("Min/MaxLineLen = %d/%d, want 0/0", summary.MinLineLen, summary.MaxLineLen)
	}
	if summary.AvgLineLen != 0 {
		t.Errorf("AvgLineLen = %v, want 0", summary.AvgLineLen)
	}
}

func TestLineStatsCounts(t *testing.T) {
	s := NewLineStats()
	s.RecordLine(10)
	s.RecordLine(20)
	s.RecordLine(30)
	s.RecordForcedFlush()

	summary := s.Summarize()

	if summary.Lines != 3 {
		t.Errorf("Lines = %d, want 3", summary.Lines)
	}
	if summary.Bytes != 60 {
		t.Errorf("Bytes = %d, want 60", summary.Bytes)
	}
	if summary.ForcedFlushes != 1 {
		t.Errorf("ForcedFlushes = %d, want 1", summary.ForcedFlushes)
	}
	if summary.MinLineLen != 10 {
		t.Errorf("MinLineLen = %d, want 10", summary.MinLineLen)
	}
	if summary.MaxLineLen != 30 {
		t.Errorf("MaxLineLen = %d, want 30", summary.MaxLineLen)
	}
	if summary.AvgLineLen != 20 {
		t.Errorf("AvgLineLen = %v, want 20", summary.AvgLineLen)
	}
}

func TestLineStatsQuantiles(t *testing.T) {
	s := NewLineStats()
	for i := 1; i <= 100; i++ {
		s.RecordLine(i)
	}

	summary := s.Summarize()

	// T-Digest is approximate; allow slack around the true quantiles.
	if summary.LineLenP50 < 40 || summary.LineLenP50 > 60 {
		t.Errorf("LineLenP50 = %v, want ~50", summary.LineLenP50)
	}
	if summary.LineLenP95 < 85 || summary.LineLenP95 > 100 {
		t.Errorf("LineLenP95 = %v, want ~95", summary.LineLenP95)
	}
	if summary.LineLenP99 < 90 || summary.LineLenP99 > 100 {
		t.Errorf("LineLenP99 = %v, want ~99", summary.LineLenP99)
	}
}

func TestLineStatsGapNeedsTwoLines(t *testing.T) {
	s := NewLineStats()
	s.RecordLine(5)

	summary := s.Summarize()
	if summary.GapP50 != 0 {
		t.Errorf("GapP50 after one line = %v, want 0", summary.GapP50)
	}

	s.RecordLine(5)
	summary = s.Summarize()
	if summary.GapP50 < 0 {
		t.Errorf("GapP50 = %v, want >= 0", summary.GapP50)
	}
}

func TestLineStatsConcurrent(t *testing.T) {
	s := NewLineStats()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.RecordLine(i)
				if i%10 == 0 {
					s.RecordForcedFlush()
				}
			}
		}()
	}
	wg.Wait()

	summary := s.Summarize()
	if summary.Lines != 800 {
		t.Errorf("Lines = %d, want 800", summary.Lines)
	}
	if summary.ForcedFlushes != 80 {
		t.Errorf("ForcedFlushes = %d, want 80", summary.ForcedFlushes)
	}
}

func TestLineStatsLogFields(t *testing.T) {
	s := NewLineStats()
	s.RecordLine(42)

	fields := s.Summarize().LogFields()
	if len(fields)%2 != 0 {
		t.Fatalf("LogFields() returned odd length %d", len(fields))
	}
	for i := 0; i < len(fields); i += 2 {
		if _, ok := fields[i].(string); !ok {
			t.Errorf("field key at %d is %T, want string", i, fields[i])
		}
	}
}
