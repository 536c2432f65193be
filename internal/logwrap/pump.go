//go:build linux

package logwrap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// pump consumes the PTY master until the child has both closed its
// output and been reaped, emitting one record per line. It performs no
// locking: the master descriptor and the line buffer are exclusively
// owned for the duration of one run.
func (l *Launcher) pump(master *os.File, pid int, tag string, req Request) (int, error) {
	buffer := newLineBuffer(l.bufferSize)
	emit := func(line []byte) {
		if req.Log {
			l.sink.Log(tag, line)
		}
		if l.callbacks.OnLine != nil {
			l.callbacks.OnLine(tag, line)
		}
	}

	fd := int(master.Fd())
	pollFDs := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}

	var status unix.WaitStatus
	reaped := false

	for !reaped {
		pollFDs[0].Revents = 0
		if _, err := unix.Poll(pollFDs, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return -1, fmt.Errorf("%w: poll: %w", ErrPumpIO, err)
		}

		if pollFDs[0].Revents&unix.POLLIN != 0 {
			n, err := unix.Read(fd, buffer.writable())
			switch {
			case err == unix.EINTR || err == unix.EAGAIN:
				// No line data this cycle.
			case err == unix.EIO:
				// Normal once every slave descriptor is closed; the
				// hang-up branch below reaps the child.
			case err != nil:
				return -1, fmt.Errorf("%w: read: %w", ErrPumpIO, err)
			case n > 0:
				if buffer.advance(n, emit) && l.callbacks.OnForcedFlush != nil {
					l.callbacks.OnForcedFlush()
				}
			}
		}

		if pollFDs[0].Revents&unix.POLLHUP != 0 {
			waited, err := unix.Wait4(pid, &status, unix.WNOHANG, nil)
			if err == unix.EINTR {
				continue
			}
			if err != nil {
				return -1, fmt.Errorf("%w: wait4: %w", ErrPumpWait, err)
			}
			// waited == 0: the child wrote EOF but has not exited yet.
			// Keep polling until it is actually gone.
			if waited == pid {
				reaped = true
			}
		}
	}

	// The child can exit with bytes still queued in the kernel's PTY
	// buffer. Drain until the master reports end of stream (EIO once
	// the last slave descriptor is gone and the buffer is empty) so
	// the tail of the stream is not lost.
	for {
		n, err := unix.Read(fd, buffer.writable())
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 {
			break
		}
		if buffer.advance(n, emit) && l.callbacks.OnForcedFlush != nil {
			l.callbacks.OnForcedFlush()
		}
	}

	outcome := outcomeFromStatus(status)

	if req.Log {
		buffer.flush(emit)
		if summary := outcome.Summary(tag); summary != "" {
			l.sink.Log(wrapperTag, []byte(summary))
		}
	}

	l.logger.Info("child_exited", "tag", tag, "pid", pid, "outcome", outcome.String())
	if l.callbacks.OnExit != nil {
		l.callbacks.OnExit(outcome)
	}

	if req.Status != nil {
		*req.Status = status
		return int(status), nil
	}
	return outcome.result(), nil
}
