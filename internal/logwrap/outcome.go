//go:build linux

package logwrap

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// OutcomeKind classifies how a child process ended.
type OutcomeKind int

const (
	// OutcomeExited means the child called exit; Code holds 0-255.
	OutcomeExited OutcomeKind = iota

	// OutcomeSignaled means the child was killed by a signal.
	OutcomeSignaled

	// OutcomeStopped means the child was stopped by a signal. Not seen
	// from the pump's own wait (no WUNTRACED), but representable for
	// callers that interpret a raw status slot.
	OutcomeStopped

	// OutcomeUnknown means the raw status matched none of the above.
	OutcomeUnknown
)

// String returns the lowercase class name, suitable as a label value.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeExited:
		return "exited"
	case OutcomeSignaled:
		return "signaled"
	case OutcomeStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Outcome is the structured termination status of a reaped child.
type Outcome struct {
	Kind   OutcomeKind
	Code   int            // exit code, valid when Kind == OutcomeExited
	Signal syscall.Signal // valid when Kind is Signaled or Stopped
	Raw    unix.WaitStatus
}

// resultNoChild is the translated result for any child that did not
// exit normally. Negative, so it is distinct from every valid exit
// code. Matches -ECHILD.
var resultNoChild = -int(unix.ECHILD)

// outcomeFromStatus translates a raw wait status.
func outcomeFromStatus(status unix.WaitStatus) Outcome {
	switch {
	case status.Exited():
		return Outcome{Kind: OutcomeExited, Code: status.ExitStatus(), Raw: status}
	case status.Signaled():
		return Outcome{Kind: OutcomeSignaled, Signal: status.Signal(), Raw: status}
	case status.Stopped():
		return Outcome{Kind: OutcomeStopped, Signal: status.StopSignal(), Raw: status}
	default:
		return Outcome{Kind: OutcomeUnknown, Raw: status}
	}
}

// result returns the caller-visible integer for this outcome: the exit
// code for a normal exit, the negative no-child sentinel otherwise.
func (o Outcome) result() int {
	if o.Kind == OutcomeExited {
		return o.Code
	}
	return resultNoChild
}

// Summary returns the human-readable end-of-run line pushed to the log
// sink under the wrapper's own tag, or "" if nothing should be logged
// (clean zero exit).
func (o Outcome) Summary(tag string) string {
	switch o.Kind {
	case OutcomeExited:
		if o.Code == 0 {
			return ""
		}
		return fmt.Sprintf("%s terminated by exit(%d)", tag, o.Code)
	case OutcomeSignaled:
		return fmt.Sprintf("%s terminated by signal %d", tag, int(o.Signal))
	case OutcomeStopped:
		return fmt.Sprintf("%s stopped by signal %d", tag, int(o.Signal))
	default:
		return fmt.Sprintf("%s terminated abnormally", tag)
	}
}

// String returns a short description for logs and the TUI.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeExited:
		return fmt.Sprintf("exit(%d)", o.Code)
	case OutcomeSignaled:
		return fmt.Sprintf("signal(%d)", int(o.Signal))
	case OutcomeStopped:
		return fmt.Sprintf("stopped(%d)", int(o.Signal))
	default:
		return "unknown"
	}
}
