package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/pregen"
)

func reportError(severity string, err error, messages ...string) {
	msg := severity
	if len(messages) > 0 {
		msg += ": " + strings.Join(messages, " ")
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(log.Out(), msg)
}

func fatal(err error, messages ...string) {
	reportError("Fatal", err, messages...)
	os.Exit(1)
}

func warning(err error, messages ...string) {
	reportError("Warning", err, messages...)
}

//////////////////////////////////////////////////////////////////////

func main() {
	hook := newDDNSHook(nil, nil)
	switch hook.parseOptions(os.Args) {
	case parseStop:
		return
	case parseFailed:
		os.Exit(1)
	case parseContinue:
	}

	// Transfer logging options to the log package

	if hook.cfg.logMajorFlag {
		log.SetLevel(log.MajorLevel)
	}
	if hook.cfg.logMinorFlag {
		log.SetLevel(log.MinorLevel)
	}
	if hook.cfg.logDebugFlag {
		log.SetLevel(log.DebugLevel)
	}

	fmt.Fprintln(log.Out(),
		programName, pregen.Version, "Starting with Log Level:", log.Level())

	// Validate everything that is likely a typo or usage error
	err := hook.ValidateCommandLineOptions()
	if err != nil {
		fatal(err)
	}

	// Build the zone registry and reconciler before listening so a broken zones
	// file is fatal at startup rather than a per-request surprise.
	err = hook.loadReconciler()
	if err != nil {
		fatal(err)
	}

	hook.startServers() // Only returns if listens succeed

	hook.Constrain() // setuid/setgid/chroot

	hook.Run()

	hook.statsReport(false) // Final stats - depending on log level

	fmt.Fprintln(log.Out(), programName, pregen.Version, "Exiting after",
		time.Now().Sub(hook.startTime).Round(time.Second))
}
