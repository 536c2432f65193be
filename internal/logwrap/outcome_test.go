//go:build linux

package logwrap

import (
	"testing"

	"golang.org/x/sys/unix"
)

// Raw wait status encoding: exit code in bits 8-15 for a normal exit,
// signal number in the low 7 bits for a signal death, 0x7f in the low
// byte with the stop signal in bits 8-15 for a stop.
func exitStatus(code int) unix.WaitStatus   { return unix.WaitStatus(code << 8) }
func signalStatus(sig int) unix.WaitStatus  { return unix.WaitStatus(sig) }
func stoppedStatus(sig int) unix.WaitStatus { return unix.WaitStatus(sig<<8 | 0x7f) }

func TestOutcomeFromStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     unix.WaitStatus
		wantKind   OutcomeKind
		wantResult int
	}{
		{"clean exit", exitStatus(0), OutcomeExited, 0},
		{"nonzero exit", exitStatus(42), OutcomeExited, 42},
		{"max exit code", exitStatus(255), OutcomeExited, 255},
		{"sigterm", signalStatus(15), OutcomeSignaled, resultNoChild},
		{"sigkill", signalStatus(9), OutcomeSignaled, resultNoChild},
		{"sigstop", stoppedStatus(19), OutcomeStopped, resultNoChild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := outcomeFromStatus(tt.status)
			if outcome.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", outcome.Kind, tt.wantKind)
			}
			if got := outcome.result(); got != tt.wantResult {
				t.Errorf("result = %d, want %d", got, tt.wantResult)
			}
			if outcome.Raw != tt.status {
				t.Errorf("raw status = %#x, want %#x", int(outcome.Raw), int(tt.status))
			}
		})
	}
}

func TestOutcome_ResultDistinctFromExitCodes(t *testing.T) {
	// The abnormal sentinel must never collide with a valid exit code.
	if resultNoChild >= 0 {
		t.Fatalf("sentinel = %d, must be negative", resultNoChild)
	}
}

func TestOutcomeKind_String(t *testing.T) {
	tests := []struct {
		kind OutcomeKind
		want string
	}{
		{OutcomeExited, "exited"},
		{OutcomeSignaled, "signaled"},
		{OutcomeStopped, "stopped"},
		{OutcomeUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("OutcomeKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestOutcome_Summary(t *testing.T) {
	tests := []struct {
		name   string
		status unix.WaitStatus
		want   string
	}{
		{"clean exit is silent", exitStatus(0), ""},
		{"nonzero exit", exitStatus(3), "sh terminated by exit(3)"},
		{"signal death", signalStatus(9), "sh terminated by signal 9"},
		{"stopped", stoppedStatus(19), "sh stopped by signal 19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outcomeFromStatus(tt.status).Summary("sh"); got != tt.want {
				t.Errorf("summary = %q, want %q", got, tt.want)
			}
		})
	}
}
