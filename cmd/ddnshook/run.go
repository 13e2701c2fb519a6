package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/osutil"
	"github.com/ddnshook/ddnshook/pregen"
)

// Run the server loop checking for signals and stats report events
func (t *ddnsHook) Run() {
	t.startTime = time.Now()
	t.statsTime = t.startTime

	var signal os.Signal
	osutil.SignalNotify(t.sig) // Register interest in signals

	configuredLevel := log.Level() // SIGUSR2 toggles between this and Debug

	fmt.Fprintln(log.Out(), programName, pregen.Version, "Ready")

	// Conditionally create the periodic report channel. Fortunately select purposely
	// doesn't mind a nil channel, which is very convenient.
	var reportChannel <-chan time.Time
	if t.cfg.reportInterval > 0 {
		reportTicker := time.NewTicker(t.cfg.reportInterval)
		reportChannel = reportTicker.C
		defer reportTicker.Stop()
	}

	// Wait for any of: a signal or the reporting channel ticker.

	stopFlag := false
	for !stopFlag {
		select {
		case <-reportChannel:
			t.statsReport(true)

		case signal = <-t.sig:
			switch {
			case osutil.IsSignalTERM(signal), osutil.IsSignalINT(signal):
				stopFlag = true

			case osutil.IsSignalUSR1(signal): // USR1 produces a status report
				t.statsReport(false)

			case osutil.IsSignalUSR2(signal): // USR2 toggles debug logging
				if log.Level() == log.DebugLevel {
					log.SetLevel(configuredLevel)
				} else {
					log.SetLevel(log.DebugLevel)
				}
				log.Majorf("Log Level now %s", log.Level())

			case osutil.IsSignalHUP(signal):
				log.Major("SIGHUP --config reload initiated")
				err := t.loadReconciler()
				if err != nil { // Keep running with the previous registry
					warning(err, "--config reload failed - keeping current zones")
				}

			default:
				log.Majorf("Signal '%s' reserved for future use", signal)
			}
		}
	}

	log.Majorf("Signal '%s' initiates shutdown", signal)
	close(t.done)   // Tell companion go-routines
	t.stopServers() // Tell servers and wait until they exit
	log.Minor("All Listen servers stopped")
}

var zeroStats serverStats

// Writes summary stats to Stdout
func (t *ddnsHook) statsReport(resetCounters bool) {
	var totals serverStats
	for _, srv := range t.servers {
		srv.statsMu.Lock() // Take writer lock in case resetCounters is true
		totals.add(&srv.stats)
		if resetCounters {
			srv.stats = zeroStats
		}
		srv.statsMu.Unlock()
	}

	now := time.Now()
	upDuration := now.Sub(t.startTime).Round(time.Second)
	statsDuration := now.Sub(t.statsTime).Round(time.Second)
	if resetCounters {
		t.statsTime = now
	}

	// Include version with uptime for stats parsers. Adding version is a
	// deterministic way for such parsers to know exactly what to expect.
	log.Major("Stats: Uptime ", upDuration,
		" Stats Time: ", statsDuration, " ", pregen.Version)
	log.Major("Stats: ", totals.String())
}
