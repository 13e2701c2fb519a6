package reconcile

import (
	"fmt"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/zone"
)

// Sync reconciles from the desired state alone by querying what the DNS currently
// holds. An empty name means the address should have no forward binding and no PTR.
// Unlike Snapshot, Sync repairs drift: records added or changed behind the event
// stream's back are found and removed, together with their orphaned counterparts on the
// other side of the forward/reverse pairing.
func (t *Reconciler) Sync(address, name string) error {
	if len(address) == 0 {
		return fmt.Errorf("sync has no address: %w", ErrValidation)
	}
	b, err := newBinding(address, name)
	if err != nil {
		return err
	}

	batch := zone.NewBatch(t.registry)

	// Forward side. Keep the record matching the desired address, remove every other
	// record of our type along with the PTR it implies at its reverse name, and add
	// the desired record if nothing matched.
	if len(b.name) > 0 {
		rrs, err := t.query(b.name, b.rrtype)
		if err != nil {
			return err
		}
		found := false
		for _, rr := range rrs {
			data, ok := addressData(rr)
			if !ok {
				continue
			}
			if data == b.address {
				found = true
				continue
			}
			batch.Delete(b.name, b.rrtype, data)
			if staleRev, e := dnsutil.ReverseName(data); e == nil {
				batch.Delete(staleRev, dns.TypePTR, b.name)
			}
		}
		if !found {
			batch.Add(b.name, t.ttl, b.rrtype, b.address)
		}
	}

	// Reverse side. Keep the PTR targeting the desired name, remove every other PTR
	// along with the forward record it implies at its target, and add the desired
	// PTR if nothing matched.
	rrs, err := t.query(b.revName, dns.TypePTR)
	if err != nil {
		return err
	}
	ptrFound := false
	for _, rr := range rrs {
		ptr, ok := rr.(*dns.PTR)
		if !ok {
			continue
		}
		target := dns.CanonicalName(ptr.Ptr)
		if len(b.name) > 0 && target == b.name {
			ptrFound = true
			continue
		}
		batch.Delete(b.revName, dns.TypePTR, target)
		batch.Delete(target, b.rrtype, b.address)
	}
	if len(b.name) > 0 && !ptrFound {
		batch.Add(b.revName, t.ttl, dns.TypePTR, b.name)
	}

	if log.IfMinor() {
		log.Minorf("sync: (%s, %s) %d op(s)", address, name, batch.Len())
	}
	batch.Commit()

	return nil
}

// query fetches the current rrset of (name, rrtype), preferring the authoritative
// backend of the name's zone over the generic fallback resolver - a recursive resolver
// may well serve a stale cached answer while the authoritative source is sitting right
// there. An unanswerable query (no capability anywhere) is an empty result, as are
// NXDomain and NoData per the Queryer contract.
func (t *Reconciler) query(name string, rrtype uint16) ([]dns.RR, error) {
	var q zone.Queryer
	if z, ok := t.registry.Resolve(name); ok && z.Queryer != nil {
		q = z.Queryer
	} else if t.fallback != nil {
		q = t.fallback
	} else {
		log.Debugf("sync: no query capability for %s - assuming empty", name)
		return nil, nil
	}

	rrs, err := q.Query(name, rrtype)
	if err == nil && log.IfDebug() {
		log.Debugf("sync: %s %s currently: %s", name, dnsutil.TypeToString(rrtype),
			dnsutil.PrettyRRSet(rrs, false))
	}

	return rrs, err
}

// addressData extracts comparable rdata from a forward record. Other types in the
// rrset - say a stray CNAME in a malformed answer - are ignored rather than deleted.
func addressData(rr dns.RR) (string, bool) {
	switch rrt := rr.(type) {
	case *dns.A:
		return rrt.A.String(), true
	case *dns.AAAA:
		return rrt.AAAA.String(), true
	}

	return "", false
}
