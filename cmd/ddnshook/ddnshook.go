package main

import (
	"os"
	"sync"
	"time"

	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/osutil"
	"github.com/ddnshook/ddnshook/reconcile"
	"github.com/ddnshook/ddnshook/resolver"
	"github.com/ddnshook/ddnshook/updater"
	"github.com/ddnshook/ddnshook/zone"
)

// The ddnsHook container exists so that most of the "main" functionality can be
// delegated to support functions and help keep the flow of main() nice and clean.
type ddnsHook struct {
	cfg *config

	done chan struct{} // All collaborative go-routines should monitor - see Done()
	sig  chan os.Signal

	resolver resolver.Resolver

	wg      sync.WaitGroup // For all servers started
	servers []*server

	recMu sync.RWMutex
	rec   *reconcile.Reconciler // Current reconciler - replaced wholesale on reload

	startTime time.Time
	statsTime time.Time // Last time stats were reset
}

func newDDNSHook(cfg *config, r resolver.Resolver) *ddnsHook {
	t := &ddnsHook{
		cfg:      cfg,
		done:     make(chan struct{}),
		sig:      make(chan os.Signal),
		resolver: r,
	}
	if t.cfg == nil {
		t.cfg = newConfig()
	}
	if t.resolver == nil {
		t.resolver = resolver.NewResolver()
	}

	return t
}

// Done is the go idiomatic way to tell collaborative go-routines to exit. All such
// go-routines should include a "case <-ddnsHook.Done(): return" in their select loop.
func (t *ddnsHook) Done() <-chan struct{} {
	return t.done
}

// loadReconciler builds the zone registry from the zones file and pushes a fresh
// reconciler to every server. Called at startup and again on SIGHUP, so a failure must
// come back to the caller - on reload the servers simply keep the reconciler they have.
func (t *ddnsHook) loadReconciler() error {
	reg, err := loadZoneRegistry(t.cfg.zonesFile, t.resolver)
	if err != nil {
		return err
	}

	var fallback zone.Queryer
	if len(t.cfg.resolverServer) > 0 {
		fallback = updater.NewResolverQuery(t.cfg.resolverServer, t.resolver)
	}
	rec := reconcile.NewReconciler(reg, fallback, t.cfg.TTLAsSecs)

	for _, zoneName := range reg.Names() {
		log.Major("Zone: ", zoneName)
	}

	t.recMu.Lock()
	t.rec = rec
	t.recMu.Unlock()
	for _, srv := range t.servers {
		srv.setReconciler(rec)
	}

	return nil
}

func (t *ddnsHook) currentReconciler() *reconcile.Reconciler {
	t.recMu.RLock()
	defer t.recMu.RUnlock()

	return t.rec
}

// Open Listen sockets and start servers. Does not return until all servers have started
// or an error is detected.
func (t *ddnsHook) startServers() {
	for _, addr := range t.cfg.listen {
		srv := newServer(t.cfg, addr)
		srv.setReconciler(t.currentReconciler())
		err := t.startServer(srv)
		if err != nil {
			fatal(err)
		}
		t.servers = append(t.servers, srv)
		log.Major("Listen on: ", srv.address)
	}
}

// Stop all servers and only return when they have all exited
func (t *ddnsHook) stopServers() {
	for _, srv := range t.servers {
		srv.stop()
	}
	t.wg.Wait() // Wait for them all to shutdown completely
}

// Constrain process via setuid, setgid and chroot
func (t *ddnsHook) Constrain() {
	if len(t.cfg.user) > 0 || len(t.cfg.group) > 0 || len(t.cfg.chroot) > 0 {
		err := osutil.Constrain(t.cfg.user, t.cfg.group, t.cfg.chroot)
		if err != nil {
			fatal(err)
		}
		log.Major("Process Constraint: ", osutil.ConstraintReport())
	}
}
