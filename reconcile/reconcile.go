package reconcile

import (
	"errors"
	"fmt"
	"net"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/zone"
)

// ErrValidation wraps every rejection of malformed input - an unparsable address or
// hostname - so transport code can distinguish caller mistakes from everything else.
// Validation always completes before any batch is built: malformed input never results
// in a partially committed update.
var ErrValidation = errors.New("invalid binding")

// Reconciler converges DNS records to the desired state of one binding per call. The
// fallback Queryer serves Sync queries for names whose zone has no query capability of
// its own (or no registered zone at all); it may be nil in which case such queries
// return empty. TTL applies to every record added by any one call.
type Reconciler struct {
	registry *zone.Registry
	fallback zone.Queryer
	ttl      uint32
}

func NewReconciler(registry *zone.Registry, fallback zone.Queryer, ttl uint32) *Reconciler {
	return &Reconciler{registry: registry, fallback: fallback, ttl: ttl}
}

// binding is one side of a transition with its derived DNS facts. An empty address or
// name means that side of the fact is absent, which is legitimate - only genuinely
// malformed input errors.
type binding struct {
	address string // Normalized textual address
	name    string // Canonical hostname
	revName string // Reverse lookup name of address
	rrtype  uint16 // TypeA or TypeAAAA, decided by revName
}

func newBinding(address, name string) (b binding, err error) {
	if len(name) > 0 {
		if _, ok := dns.IsDomainName(name); !ok {
			return b, fmt.Errorf("bad hostname '%s': %w", name, ErrValidation)
		}
		b.name = dns.CanonicalName(name)
	}

	if len(address) > 0 {
		ip := net.ParseIP(address)
		if ip == nil {
			return b, fmt.Errorf("bad IP address '%s': %w", address, ErrValidation)
		}
		b.address = ip.String() // Normalize so rdata comparisons are reliable
		b.revName, err = dnsutil.ReverseName(b.address)
		if err != nil {
			return b, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
		}
		b.rrtype = forwardType(b.revName)
	}

	return b, nil
}

// complete is true when both halves of the binding are known, which is the only state
// in which forward and reverse records can exist for it.
func (t binding) complete() bool {
	return len(t.address) > 0 && len(t.name) > 0
}

// forwardType decides A vs AAAA purely from where the reverse name lives. The textual
// shape of the address has no say in the matter.
func forwardType(revName string) uint16 {
	if dnsutil.InDomain(revName, dnsutil.V6ArpaRoot) {
		return dns.TypeAAAA
	}

	return dns.TypeA
}

// Snapshot reconciles from a trusted before/after pair: remove the old forward and PTR
// records, add the new ones, commit. No DNS reads occur so drift which happened outside
// the event stream is invisible here - that is Sync's job.
//
// Any of the four inputs may be empty. Identical before and after states short-circuit
// to a no-op before validation, exactly as an event with no names does.
func (t *Reconciler) Snapshot(oldAddress, oldName, newAddress, newName string) error {
	if len(oldName) == 0 && len(newName) == 0 {
		return nil // No DNS either before or after
	}
	if oldName == newName && oldAddress == newAddress {
		return nil // Same DNS both before and after
	}

	pre, err := newBinding(oldAddress, oldName)
	if err != nil {
		return err
	}
	post, err := newBinding(newAddress, newName)
	if err != nil {
		return err
	}

	batch := zone.NewBatch(t.registry)

	if pre.complete() {
		batch.Delete(pre.name, pre.rrtype, pre.address)
		batch.Delete(pre.revName, dns.TypePTR, pre.name)
	}
	if post.complete() {
		batch.Add(post.name, t.ttl, post.rrtype, post.address)
		batch.Add(post.revName, t.ttl, dns.TypePTR, post.name)
	}

	if log.IfMinor() {
		log.Minorf("snapshot: (%s, %s) -> (%s, %s) %d op(s)",
			oldAddress, oldName, newAddress, newName, batch.Len())
	}
	batch.Commit()

	return nil
}

// DeleteBinding handles an explicit removal event where only the final known state is
// available. With no hostname it deliberately does nothing at all: blindly erasing the
// PTR at the address's reverse name could destroy a record belonging to an unrelated
// binding.
func (t *Reconciler) DeleteBinding(address, name string) error {
	if len(name) == 0 {
		log.Debug("delete: no hostname - nothing safe to remove")
		return nil
	}

	b, err := newBinding(address, name)
	if err != nil {
		return err
	}
	if len(b.address) == 0 {
		return fmt.Errorf("delete of '%s' has no address: %w", name, ErrValidation)
	}

	batch := zone.NewBatch(t.registry)
	batch.Delete(b.name, b.rrtype, b.address)
	batch.Delete(b.revName, dns.TypePTR, b.name)

	if log.IfMinor() {
		log.Minorf("delete: (%s, %s) %d op(s)", address, name, batch.Len())
	}
	batch.Commit()

	return nil
}
