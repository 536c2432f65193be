//go:build linux

package logwrap

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// wrapperTag is the tag used for the wrapper's own summary records, as
// opposed to lines captured from the child.
const wrapperTag = "logwrap"

// Request describes one launch. Immutable once Run begins.
type Request struct {
	// Argv is the program and its arguments. Argv[0] is resolved
	// through PATH; the base name of Argv[0] becomes the log tag.
	Argv []string

	// Log controls whether captured lines reach the sink. When false
	// the child's output is still drained from the PTY so the child
	// never blocks on a full terminal buffer, but nothing is logged.
	Log bool

	// IgnoreIntQuit suppresses SIGINT/SIGQUIT in the parent for the
	// duration of the child's run, so an interrupt aimed at the parent
	// does not truncate capture of a still-running child.
	IgnoreIntQuit bool

	// Status, when non-nil, receives the child's raw wait status and
	// Run returns it verbatim instead of translating.
	Status *unix.WaitStatus
}

// Callbacks are optional observers of pump events. All callbacks run
// on the pump goroutine; line slices are only valid during the call.
type Callbacks struct {
	OnStart       func(pid int)
	OnLine        func(tag string, line []byte)
	OnForcedFlush func()
	OnExit        func(outcome Outcome)
}

// Config holds configuration for a Launcher.
type Config struct {
	// Logger receives the launcher's own structured events. Defaults
	// to slog.Default().
	Logger *slog.Logger

	// Sink receives captured lines. Defaults to a SlogSink over Logger.
	Sink Sink

	// Callbacks observe pump events. All fields optional.
	Callbacks Callbacks

	// BufferSize overrides the 4096-byte line buffer capacity. Only
	// tests should set this.
	BufferSize int
}

// Launcher runs child processes one at a time per call. Concurrent Run
// calls on the same Launcher are safe: PTY allocation plus child start
// are serialized under an internal lock, since terminal allocation is
// a shared resource and is not composable with a concurrent start. The
// lock is never held during the pump loop.
type Launcher struct {
	mu         sync.Mutex
	logger     *slog.Logger
	sink       Sink
	callbacks  Callbacks
	bufferSize int
}

// New creates a Launcher.
func New(cfg Config) *Launcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := cfg.Sink
	if sink == nil {
		sink = &SlogSink{Logger: logger}
	}
	return &Launcher{
		logger:     logger,
		sink:       sink,
		callbacks:  cfg.Callbacks,
		bufferSize: cfg.BufferSize,
	}
}

// Run launches the requested program with stdout and stderr bound to a
// fresh PTY slave, pumps its output until the child has both hung up
// and been reaped, and returns the translated result: the child's exit
// code on a normal exit, or a negative sentinel if it died by signal.
// If req.Status is set, the raw wait status is stored there and
// returned verbatim instead.
//
// Setup errors (empty argv, unresolvable program, PTY allocation,
// start failure) return before any fork side effects and produce no
// log records. Run blocks until the child is gone; there is no
// cancellation.
func (l *Launcher) Run(req Request) (int, error) {
	if len(req.Argv) == 0 {
		return -1, ErrEmptyArgv
	}

	// Resolve the program before acquiring anything, so an
	// unresolvable path fails with no side effects at all.
	path, err := exec.LookPath(req.Argv[0])
	if err != nil {
		return -1, fmt.Errorf("%w: %w", ErrChildExec, err)
	}

	l.mu.Lock()

	pair, err := openPTYPair()
	if err != nil {
		l.mu.Unlock()
		return -1, err
	}

	guard := engageSignalGuard()

	cmd := &exec.Cmd{
		Path:   path,
		Args:   append([]string(nil), req.Argv...),
		Stdin:  os.Stdin,
		Stdout: pair.slave,
		Stderr: pair.slave,
	}

	if err := cmd.Start(); err != nil {
		pair.close()
		guard.release()
		l.mu.Unlock()
		return -1, fmt.Errorf("%w: %w", ErrFork, err)
	}

	// The child holds its own slave copies on fd 1 and 2. The parent
	// must drop its copy or the pump never observes hang-up.
	pair.closeSlave()
	l.mu.Unlock()

	defer pair.close()
	defer guard.release()

	if req.IgnoreIntQuit {
		guard.ignoreForChild()
	}

	tag := filepath.Base(req.Argv[0])
	pid := cmd.Process.Pid
	l.logger.Debug("child_started", "tag", tag, "pid", pid, "path", path)
	if l.callbacks.OnStart != nil {
		l.callbacks.OnStart(pid)
	}

	result, err := l.pump(pair.master, pid, tag, req)

	// The pump reaped with wait4; release the stale handle without
	// waiting again.
	cmd.Process.Release()

	return result, err
}
