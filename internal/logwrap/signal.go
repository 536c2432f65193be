//go:build linux

package logwrap

import (
	"os"
	"os/signal"
	"syscall"
)

// interruptSignals are the interactive interrupt-class signals the
// guard manages.
var interruptSignals = []os.Signal{syscall.SIGINT, syscall.SIGQUIT}

// signalGuard scopes SIGINT/SIGQUIT handling around one launch. While
// engaged, delivery is diverted into a held channel so an interrupt
// arriving between PTY setup and child start cannot kill the parent
// mid-launch. If the request asks for it, dispositions are switched to
// ignore for the child's whole run. release undoes everything and must
// run on every exit path: dispositions first, then the diversion.
type signalGuard struct {
	held       chan os.Signal
	ignoring   bool
	wasIgnored map[os.Signal]bool
}

// engageSignalGuard records the current dispositions and diverts the
// interrupt signals. The recorded state is what release restores to.
func engageSignalGuard() *signalGuard {
	g := &signalGuard{
		held:       make(chan os.Signal, 16),
		wasIgnored: make(map[os.Signal]bool, len(interruptSignals)),
	}
	for _, sig := range interruptSignals {
		g.wasIgnored[sig] = signal.Ignored(sig)
	}
	signal.Notify(g.held, interruptSignals...)
	return g
}

// ignoreForChild installs ignore dispositions for the child's
// lifetime. Ignore also stops the diversion channel for these signals,
// so an interrupt aimed at the parent is dropped entirely until
// release.
func (g *signalGuard) ignoreForChild() {
	g.ignoring = true
	signal.Ignore(interruptSignals...)
}

// release restores the original dispositions, then removes the
// diversion. Signals whose disposition was ignore before the guard
// engaged stay ignored.
func (g *signalGuard) release() {
	if g.ignoring {
		for _, sig := range interruptSignals {
			if !g.wasIgnored[sig] {
				signal.Reset(sig)
			}
		}
		g.ignoring = false
	}
	signal.Stop(g.held)
}
