package mock

import (
	"sync"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
	"github.com/ddnshook/ddnshook/zone"
)

// Updater implements zone.Updater and zone.Queryer in memory. Apply calls are recorded
// for later assertion and Query answers come from a canned table. Whether a particular
// test zone exposes the query capability is decided by the test when it populates
// zone.Zone.Queryer, not by this type.
type Updater struct {
	mu       sync.Mutex
	applied  map[string][]zone.Op
	answers  map[string][]dns.RR
	queryErr error
}

func NewUpdater() *Updater {
	return &Updater{
		applied: make(map[string][]zone.Op),
		answers: make(map[string][]dns.RR),
	}
}

func (t *Updater) Apply(zoneName string, ops []zone.Op) {
	t.mu.Lock()
	t.applied[zoneName] = append(t.applied[zoneName], ops...)
	t.mu.Unlock()
}

func (t *Updater) Query(name string, rrtype uint16) ([]dns.RR, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.queryErr != nil {
		return nil, t.queryErr
	}

	return t.answers[answerKey(name, rrtype)], nil
}

// SetAnswer cans the response for (name, rrtype). RRs are parsed with dns.NewRR so
// tests read like zone file fragments. An empty list of texts means NoData.
func (t *Updater) SetAnswer(name string, rrtype uint16, texts ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rrs := make([]dns.RR, 0, len(texts))
	for _, txt := range texts {
		rr, err := dns.NewRR(txt)
		if err != nil {
			panic("mock.Updater.SetAnswer: " + err.Error())
		}
		rrs = append(rrs, rr)
	}
	t.answers[answerKey(name, rrtype)] = rrs
}

// SetQueryError makes every subsequent Query fail with err.
func (t *Updater) SetQueryError(err error) {
	t.mu.Lock()
	t.queryErr = err
	t.mu.Unlock()
}

// Ops returns the operations applied so far for the zone, in order.
func (t *Updater) Ops(zoneName string) []zone.Op {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]zone.Op{}, t.applied[dns.CanonicalName(zoneName)]...)
}

// OpStrings renders Ops for compact test comparisons.
func (t *Updater) OpStrings(zoneName string) []string {
	ops := t.Ops(zoneName)
	ss := make([]string, 0, len(ops))
	for _, op := range ops {
		ss = append(ss, op.String())
	}

	return ss
}

// Zones returns how many zones have received at least one Apply.
func (t *Updater) Zones() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.applied)
}

// Reset discards all recorded Applies and canned answers.
func (t *Updater) Reset() {
	t.mu.Lock()
	t.applied = make(map[string][]zone.Op)
	t.answers = make(map[string][]dns.RR)
	t.queryErr = nil
	t.mu.Unlock()
}

func answerKey(name string, rrtype uint16) string {
	return dns.CanonicalName(name) + "/" + dnsutil.TypeToString(rrtype)
}
