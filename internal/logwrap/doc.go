// Package logwrap runs a child process with its stdout and stderr
// attached to the slave side of a pseudo-terminal, splits everything
// the child writes into lines, and forwards each line to a log sink
// tagged with the child's program name.
//
// A PTY is used instead of a pipe so that the C library inside the
// child sees an interactive device on stdout and keeps line buffering.
// With a pipe, stdio switches to full buffering and the child's output
// arrives late or not at all if it crashes.
//
// The pump reads the PTY master with poll(2) so a single loop can
// observe both "data ready" and "peer closed" without a second
// goroutine, reassembles lines in a fixed 4096-byte buffer, and reaps
// the child with a non-blocking wait once hang-up is seen. The child
// is reaped exactly once and the master descriptor is closed on every
// exit path.
package logwrap
