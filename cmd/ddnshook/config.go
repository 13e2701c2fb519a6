package main

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/pregen"
)

const (
	programName = "ddnshook"

	defaultProjectURL = "https://github.com/ddnshook/ddnshook"

	defaultService   = "7001" // Inherited from the system this replaced, no better reason
	defaultListen    = ":" + defaultService
	defaultZonesFile = "zones.yaml"

	defaultReportInterval = time.Hour
)

var (
	defaultTTL = uint32(time.Hour.Seconds()) // For records created by reconciliation
)

// config defines the global configuration settings used by ddnshook. These settings
// apply across the whole program and all servers. Once set it should never be changed as
// it is shared amongst go-routines without any lock protections.
type config struct {
	projectURL string

	logMajorFlag bool // Major events and on-going information such as periodic stats
	logMinorFlag bool // Details associated with Major events
	logDebugFlag bool // Developer flag

	queryAssistedFlag bool // Reconcile by querying the DNS rather than trusting snapshots

	TTL            time.Duration // TTL for records created by reconciliation
	TTLAsSecs      uint32        // Converted and rounded from TTL
	reportInterval time.Duration // Statistics reporting interval. Zero means never.

	zonesFile  string // YAML mapping of zones to backends
	secretFile string // File holding the shared webhook secret
	secret     []byte // Loaded from secretFile. Empty disables signature checks.

	resolverServer string // Generic fallback resolver for query-assisted mode

	user, group, chroot string // Privilege constraints

	listen []string // All addresses to listen on
}

func newConfig() *config {
	t := &config{projectURL: defaultProjectURL}
	info, ok := debug.ReadBuildInfo()
	if ok {
		t.projectURL = info.Main.Path // Override with embedded if present
	}

	return t
}

func (t *config) printVersion() {
	fmt.Fprintf(log.Out(), "Program: %s %s (%s)\n",
		programName, pregen.Version, pregen.ReleaseDate)
	fmt.Fprintf(log.Out(), "Project: %s\n", t.projectURL)
}
