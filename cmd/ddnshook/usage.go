package main

import (
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/ddnshook/ddnshook/log"
)

type parseResult int // This is a ternary variable
const (
	parseStop     parseResult = iota // No error, but don't continue
	parseContinue                    // No errors and continue
	parseFailed                      // Errors, do not continue
)

// Option parsing mostly leaves formatting to pflag but takes a couple of liberties to
// make the output read well, such as the trailing \n on usage strings of options with
// no default. Duplicate options are disallowed by hand because pflag silently accepts
// them otherwise.
func (t *ddnsHook) parseOptions(args []string) parseResult {
	var helpFlag, versionFlag bool

	name := programName
	if len(args) > 0 {
		name = args[0]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Consider '-h' for command-line usage")
	}

	fs.SetOutput(log.Out())

	// Non-config flags

	fs.BoolVarP(&helpFlag, "help", "h", false, "Print command-line usage")
	fs.BoolVarP(&versionFlag, "version", "v", false, "Print version and origin URL")

	// config flags

	fs.BoolVar(&t.cfg.logMajorFlag, "log-major", true, "Log major events to Stdout")
	fs.BoolVar(&t.cfg.logMinorFlag, "log-minor", false,
		"Log minor events to Stdout - this implies --log-major")
	fs.BoolVar(&t.cfg.logDebugFlag, "log-debug", false,
		"Log debug events to Stdout - this implies --log-minor")

	fs.BoolVar(&t.cfg.queryAssistedFlag, "query-assisted", false,
		`Reconcile by querying current DNS content rather than trusting
the before-image in the webhook payload. Repairs records which
have drifted behind the back of the event stream.`)

	// config Durations

	fs.DurationVar(&t.cfg.TTL, "TTL", time.Second*time.Duration(defaultTTL),
		"TTL for records created by reconciliation (>= 1s)")
	fs.DurationVar(&t.cfg.reportInterval, "report", defaultReportInterval,
		"Interval between statistics reports (>= 1s, or 0 to disable)")

	// config StringVars

	fs.StringVar(&t.cfg.zonesFile, "config", defaultZonesFile,
		`YAML file defining zone backends and the zones they manage.
`)
	fs.StringVar(&t.cfg.secretFile, "secret-file", "",
		`File containing the shared webhook secret used to verify the
X-Hook-Signature header. If unset, signatures are not checked.
`)
	fs.StringVar(&t.cfg.resolverServer, "resolver", "",
		`Recursive resolver to query for zones whose backend cannot be
queried directly. Only consulted with --query-assisted.
`)
	fs.StringVar(&t.cfg.chroot, "chroot", "",
		"Reduce privileges with chroot() after --listen.")
	fs.StringVar(&t.cfg.group, "group", "",
		"Reduce privileges with setgid() after --listen.")
	fs.StringVar(&t.cfg.user, "user", "",
		"Reduce privileges with setuid() after --listen.")

	// config String Arrays

	fs.StringArrayVar(&t.cfg.listen, "listen", []string{},
		`Address to listen on for webhook requests - accepts 'host:port',
':port', v4address:port or [v6address]:port syntax. The default
is ':`+defaultService+`'.
`)

	////////////////////////////////////////

	dupes := make(map[string]bool) // True means dupes are ok

	dupes["help"] = true    // Documentation options can be duplicated because the
	dupes["version"] = true // user may be fumbling around trying to work it out.

	dupes["listen"] = true // Legitimately allowed multiple times

	fs.SetInterspersed(false) // This GNU-ism breaks execute chaining, so turn it off!
	err := fs.ParseAll(args[1:],
		func(f *flag.Flag, v string) error {
			if tf, ok := dupes[f.Name]; ok {
				if tf {
					return fs.Set(f.Name, v)
				}
				return fmt.Errorf("Duplicate option '--%v %v' not allowed",
					f.Name, v)
			}
			dupes[f.Name] = false
			return fs.Set(f.Name, v)
		})

	if err != nil {
		fmt.Fprintln(log.Out(), "Error:", err.Error())
		return parseFailed
	}

	// Handle all documentation options locally

	if helpFlag {
		printUsage(fs)
		fmt.Fprintln(log.Out())
		t.cfg.printVersion()
		return parseStop
	}

	if versionFlag {
		t.cfg.printVersion()
		return parseStop
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(log.Out(), "Error:Unexpected goop on command line: '%s'\n",
			strings.Join(fs.Args(), " "))
		return parseFailed
	}

	return parseContinue
}

func printUsage(fs *flag.FlagSet) {
	o := log.Out()
	fmt.Fprintln(o, "NAME")
	fmt.Fprintln(o, " ", programName, "-- webhook-driven dynamic DNS reconciliation daemon")
	fmt.Fprintln(o)
	fmt.Fprintln(o, "SYNOPSIS")
	fmt.Fprintln(o, "     ddnshook -h | --help | -v | --version")
	fmt.Fprintln(o, "     ddnshook --config zones.yaml [--secret-file path]")
	fmt.Fprintln(o, `                 [--listen listen-address]… [--TTL time.Duration=1h]
                 [--query-assisted] [--resolver server]
                 [--user user-name] [--group group-name] [--chroot path]
                 [--log-major=true] [--log-minor] [--log-debug]
                 [--report time.Duration=1h]`)
	fmt.Fprintln(o)
	fmt.Fprintln(o, "     Ellipses (…) indicate options which can be specified multiple times.")
	fmt.Fprint(o, `
DESCRIPTION
     ddnshook keeps forward (A/AAAA) and reverse (PTR) DNS records in step with
     an IPAM system, such as NetBox, which announces address changes via
     webhooks. Each notification carries the before and after state of an
     (address, hostname) binding; ddnshook works out the record operations
     needed to converge the DNS on the after state and commits them to each
     affected zone through that zone's configured backend.

     Backends and the zones they manage are defined in the --config YAML file.
     RFC2136 dynamic update with TSIG is the usual backend; zones hosted on
     Cloudflare are driven through their API and a print-only dummy backend is
     available for dry runs.

     By default ddnshook trusts the before-image in each notification. With
     --query-assisted it instead queries the DNS for current content, which
     also cleans up records which have drifted out of step with the event
     stream.
`)
	fmt.Fprintln(o)
	fmt.Fprintln(o, "OPTIONS")
	op := fs.Output() // Save and restore - not sure this is a good idea
	fs.SetOutput(o)
	fs.PrintDefaults()
	fs.SetOutput(op)

	fmt.Fprint(o, `
SIGNALS
  SIGHUP  - reload the --config zones file
  SIGTERM - initiate shutdown
  SIGINT  - initiate shutdown
  SIGUSR1 - generates an immediate stats report
  SIGUSR2 - toggles debug logging
`)
}
