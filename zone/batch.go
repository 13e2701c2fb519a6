package zone

import (
	"sort"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
	"github.com/ddnshook/ddnshook/log"
)

// Batch accumulates the record operations of a single reconciliation event, grouped by
// zone and ordered within each zone. Each reconciliation owns its batch outright so
// there is no locking. A batch must be committed at most once and never touched again
// afterwards.
type Batch struct {
	registry  *Registry
	zones     map[string]*Zone // Zones with pending ops, keyed by zone name
	ops       map[string][]Op
	committed bool
}

// NewBatch begins an empty batch against the supplied registry.
func NewBatch(registry *Registry) *Batch {
	return &Batch{
		registry: registry,
		zones:    make(map[string]*Zone),
		ops:      make(map[string][]Op),
	}
}

// Add appends an add operation for the absolute name.
func (t *Batch) Add(name string, ttl uint32, rrtype uint16, data string) {
	t.record(Add, name, ttl, rrtype, data)
}

// Replace appends a replace operation - remove the rrset then add - for the absolute
// name.
func (t *Batch) Replace(name string, ttl uint32, rrtype uint16, data string) {
	t.record(Replace, name, ttl, rrtype, data)
}

// Delete appends a delete operation for the absolute name. An empty data string means
// delete every record of rrtype at the name.
func (t *Batch) Delete(name string, rrtype uint16, data string) {
	t.record(Delete, name, 0, rrtype, data)
}

// record resolves the name's zone and appends the op to that zone's sequence. A name
// with no registered enclosing zone is dropped here and now - not an error, just not
// ours to manage. The name is relativized here as well since backends only see
// zone-relative names.
func (t *Batch) record(action Action, name string, ttl uint32, rrtype uint16, data string) {
	name = dns.CanonicalName(name)
	z, ok := t.registry.Resolve(name)
	if !ok {
		log.Debugf("batch: no zone encloses %s - dropped", name)
		return
	}

	t.zones[z.Name] = z
	t.ops[z.Name] = append(t.ops[z.Name],
		Op{Action: action, Name: dnsutil.Relativize(name, z.Name),
			TTL: ttl, Rrtype: rrtype, Data: data})
}

// Len returns the total number of pending ops across all zones.
func (t *Batch) Len() (n int) {
	for _, ops := range t.ops {
		n += len(ops)
	}

	return
}

// Ops returns the pending sequence for a zone. Exposed for tests and backends which
// want to peek; the returned slice is the live one so callers must not modify it.
func (t *Batch) Ops(zoneName string) []Op {
	return t.ops[dns.CanonicalName(zoneName)]
}

// Commit hands each zone's op sequence to that zone's Updater. Zones are independent of
// each other so ordering across zones is merely cosmetic; sorted order keeps logs and
// tests deterministic. Updaters report their own failures and a failure in one zone
// neither rolls back nor pre-empts any other zone. Commit on an already committed batch
// panics as that is strictly a programming error.
func (t *Batch) Commit() {
	if t.committed {
		panic("zone.Batch committed twice")
	}
	t.committed = true

	names := make([]string, 0, len(t.ops))
	for n := range t.ops {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if log.IfDebug() {
			log.Debugf("batch: commit %d op(s) to %s", len(t.ops[n]), n)
		}
		t.zones[n].Updater.Apply(n, t.ops[n])
	}

	t.zones = nil // The batch is dead - make sure any further use blows up
	t.ops = nil
}
