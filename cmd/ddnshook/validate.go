package main

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"time"
)

// Check everything that could likely be a typo or usage error. Mostly check in order
// presented by the flag package.
func (t *ddnsHook) ValidateCommandLineOptions() error {
	if t.cfg.TTL < time.Second {
		return fmt.Errorf("--TTL must be at least 1 second")
	}
	t.cfg.TTLAsSecs = uint32(t.cfg.TTL.Seconds() + 0.5) // Round up to next second

	if t.cfg.reportInterval != 0 && t.cfg.reportInterval < time.Second {
		return fmt.Errorf("--report must be at least 1 second, or zero to disable")
	}

	if len(t.cfg.zonesFile) == 0 {
		return fmt.Errorf("Must supply a --config zones file")
	}

	if len(t.cfg.listen) == 0 {
		t.cfg.listen = append(t.cfg.listen, defaultListen)
	} else {
		for ix, addr := range t.cfg.listen {
			t.cfg.listen[ix] = normalizeHostPort(addr, defaultService)
		}
	}

	if len(t.cfg.secretFile) > 0 {
		secret, err := os.ReadFile(t.cfg.secretFile)
		if err != nil {
			return fmt.Errorf("--secret-file:%w", err)
		}
		secret = bytes.TrimSpace(secret) // Editors love a trailing newline
		if len(secret) == 0 {
			return fmt.Errorf("--secret-file %s is empty", t.cfg.secretFile)
		}
		t.cfg.secret = secret
	}

	if len(t.cfg.resolverServer) > 0 {
		t.cfg.resolverServer = normalizeHostPort(t.cfg.resolverServer, "domain")
		if _, _, err := net.SplitHostPort(t.cfg.resolverServer); err != nil {
			return fmt.Errorf("--resolver %s invalid syntax:%w",
				t.cfg.resolverServer, err)
		}
	}

	return nil
}

// Be helpful with host:port and host:service strings. If the original string only
// contains a naked IP address, append the service to create a fully formed
// Host:Port. Otherwise split it up to see if it's already in host:port, if not append
// the service and hope for the best. This function is useful for prepping Listen() and
// Dial() host:port strings.
func normalizeHostPort(addr, service string) string {
	ip := net.ParseIP(addr)
	if ip != nil { // naked IP?
		return net.JoinHostPort(addr, service)
	}
	_, _, err := net.SplitHostPort(addr)
	if err != nil {
		return net.JoinHostPort(addr, service)
	}

	return addr
}
