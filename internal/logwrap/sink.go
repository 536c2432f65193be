package logwrap

import (
	"log/slog"
	"sync"
)

// Sink receives one record per captured line. The line slice is only
// valid for the duration of the call; implementations that retain it
// must copy.
type Sink interface {
	Log(tag string, line []byte)
}

// SlogSink forwards captured lines to a structured logger as
// "child_output" events. This is the default sink for the CLI.
type SlogSink struct {
	Logger *slog.Logger
}

func (s *SlogSink) Log(tag string, line []byte) {
	s.Logger.Info("child_output", "tag", tag, "line", string(line))
}

// RecordingSink buffers every record it receives. Used by tests.
type RecordingSink struct {
	mu      sync.Mutex
	records []Record
}

// Record is one (tag, line) pair pushed to a RecordingSink.
type Record struct {
	Tag  string
	Line string
}

func (s *RecordingSink) Log(tag string, line []byte) {
	s.mu.Lock()
	s.records = append(s.records, Record{Tag: tag, Line: string(line)})
	s.mu.Unlock()
}

// Records returns a copy of everything logged so far.
func (s *RecordingSink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Lines returns just the line text of every record, in order.
func (s *RecordingSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r.Line
	}
	return out
}
