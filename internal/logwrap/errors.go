package logwrap

import "errors"

// Sentinel errors for the launch and pump phases. Callers match with
// errors.Is; the wrapped cause carries the underlying OS error.
var (
	// ErrTerminal indicates the PTY master/slave pair could not be
	// allocated. Nothing was started and nothing was logged.
	ErrTerminal = errors.New("pty allocation failed")

	// ErrFork indicates the child process could not be started.
	ErrFork = errors.New("starting child failed")

	// ErrChildExec indicates the target program could not be executed
	// (not found, not executable). Setup fails before any output is
	// captured.
	ErrChildExec = errors.New("executing child program failed")

	// ErrPumpIO indicates a hard read failure on the PTY master. Lines
	// already emitted are not retracted.
	ErrPumpIO = errors.New("reading child output failed")

	// ErrPumpWait indicates reaping the child failed.
	ErrPumpWait = errors.New("waiting for child failed")

	// ErrEmptyArgv indicates the launch request had no program to run.
	ErrEmptyArgv = errors.New("empty argument list")
)
