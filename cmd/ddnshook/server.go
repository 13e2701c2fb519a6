package main

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ddnshook/ddnshook/reconcile"
)

// server is created for each listen address. It is the http.Handler for that listener
// and carries the per-listener stats.
type server struct {
	cfg     *config
	address string

	httpServer *http.Server
	listener   net.Listener

	recMu sync.RWMutex
	rec   *reconcile.Reconciler // Replaced wholesale on zones file reload

	statsMu sync.RWMutex
	stats   serverStats
}

func newServer(cfg *config, address string) *server {
	t := &server{cfg: cfg, address: address}
	t.httpServer = &http.Server{
		Addr:              address,
		Handler:           t,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return t
}

func (t *server) setReconciler(rec *reconcile.Reconciler) {
	t.recMu.Lock()
	t.rec = rec
	t.recMu.Unlock()
}

func (t *server) getReconciler() *reconcile.Reconciler {
	t.recMu.RLock()
	defer t.recMu.RUnlock()

	return t.rec
}

// startServer starts accepting webhook requests. The Listen is made directly so a
// failed bind surfaces to the caller before any go-routine starts; Serve then runs
// under the WaitGroup until Shutdown.
func (t *ddnsHook) startServer(srv *server) error {
	ln, err := net.Listen("tcp", srv.address)
	if err != nil {
		return err
	}
	srv.listener = ln

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		err := srv.httpServer.Serve(ln)
		if err != nil && err != http.ErrServerClosed {
			warning(err, "webhook server", srv.address)
		}
	}()

	return nil
}

func (t *server) stop() {
	t.httpServer.Shutdown(context.Background())
}

func (t *server) addStats(from *serverStats) {
	t.statsMu.Lock()
	t.stats.add(from)
	t.statsMu.Unlock()
}
