//go:build !windows
// +build !windows

package osutil

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalNotify registers the channel for every signal the daemon's run loop acts on:
// shutdown, stats report, debug toggle and zones file reload.
func SignalNotify(c chan os.Signal) {
	signal.Notify(c, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGUSR1, syscall.SIGUSR2)
}

// The IsSignal* helpers keep syscall out of the run loop. Signals which don't exist on
// Windows simply never match there.

// IsSignalUSR1 reports whether s is SIGUSR1 - the stats report request.
func IsSignalUSR1(s os.Signal) bool {
	return s == syscall.SIGUSR1
}

// IsSignalUSR2 reports whether s is SIGUSR2 - the debug logging toggle.
func IsSignalUSR2(s os.Signal) bool {
	return s == syscall.SIGUSR2
}

// IsSignalTERM reports whether s is SIGTERM.
func IsSignalTERM(s os.Signal) bool {
	return s == syscall.SIGTERM
}

// IsSignalINT reports whether s is SIGINT.
func IsSignalINT(s os.Signal) bool {
	return s == os.Interrupt
}

// IsSignalHUP reports whether s is SIGHUP - the zones file reload request.
func IsSignalHUP(s os.Signal) bool {
	return s == syscall.SIGHUP
}
