//go:build linux

package logwrap

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// ptyPair owns a pseudo-terminal master/slave pair. The two sides are
// always created together: openPTYPair either returns a complete pair
// or closes everything it opened and returns an error.
type ptyPair struct {
	master *os.File
	slave  *os.File
}

// openPTYPair allocates a PTY through the devpts interface: open
// /dev/ptmx, resolve the slave number with TIOCGPTN, unlock the slave
// with TIOCSPTLCK, open /dev/pts/N.
func openPTYPair() (*ptyPair, error) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR|syscall.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open /dev/ptmx: %w", ErrTerminal, err)
	}

	fd := int(master.Fd())

	ptyNumber, err := unix.IoctlGetInt(fd, unix.TIOCGPTN)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("%w: get slave number (TIOCGPTN): %w", ErrTerminal, err)
	}

	if err := unix.IoctlSetPointerInt(fd, unix.TIOCSPTLCK, 0); err != nil {
		master.Close()
		return nil, fmt.Errorf("%w: unlock slave (TIOCSPTLCK): %w", ErrTerminal, err)
	}

	slavePath := fmt.Sprintf("/dev/pts/%d", ptyNumber)
	slave, err := os.OpenFile(slavePath, os.O_RDWR|syscall.O_NOCTTY, 0)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("%w: open slave %s: %w", ErrTerminal, slavePath, err)
	}

	return &ptyPair{master: master, slave: slave}, nil
}

// closeSlave closes the parent's copy of the slave. Called after the
// child holds its own copies on stdout/stderr. Idempotent.
func (p *ptyPair) closeSlave() {
	if p.slave != nil {
		p.slave.Close()
		p.slave = nil
	}
}

// close releases both descriptors. Safe on a partially released pair.
func (p *ptyPair) close() {
	p.closeSlave()
	if p.master != nil {
		p.master.Close()
		p.master = nil
	}
}
