package dns

import (
	"sync"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
)

// UpdateServer is a dns.Handler which plays the part of an authoritative primary for
// backend tests. Queries are answered from a canned rrset table; dynamic updates are
// captured for later inspection and answered with a settable rcode. When the enclosing
// server was started with a tsig map, unsigned or badly signed updates are refused.
type UpdateServer struct {
	mu      sync.Mutex
	rcode   int
	updates []*dns.Msg
	answers map[string][]dns.RR
}

func NewUpdateServer() *UpdateServer {
	return &UpdateServer{answers: make(map[string][]dns.RR)}
}

// SetRcode makes subsequent updates fail with the supplied rcode.
func (t *UpdateServer) SetRcode(rcode int) {
	t.mu.Lock()
	t.rcode = rcode
	t.mu.Unlock()
}

// SetAnswer cans the query response for (name, rrtype) from zone file fragments.
func (t *UpdateServer) SetAnswer(name string, rrtype uint16, texts ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rrs := make([]dns.RR, 0, len(texts))
	for _, txt := range texts {
		rr, err := dns.NewRR(txt)
		if err != nil {
			panic("UpdateServer.SetAnswer: " + err.Error())
		}
		rrs = append(rrs, rr)
	}
	t.answers[key(name, rrtype)] = rrs
}

// Updates returns the update messages received so far.
func (t *UpdateServer) Updates() []*dns.Msg {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]*dns.Msg{}, t.updates...)
}

func (t *UpdateServer) ServeDNS(w dns.ResponseWriter, q *dns.Msg) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := new(dns.Msg)
	switch q.Opcode {
	case dns.OpcodeUpdate:
		if q.IsTsig() != nil && w.TsigStatus() != nil {
			m.SetRcode(q, dns.RcodeNotAuth)
			break
		}
		t.updates = append(t.updates, q.Copy())
		m.SetRcode(q, t.rcode)

	case dns.OpcodeQuery:
		if len(q.Question) != 1 {
			m.SetRcode(q, dns.RcodeFormatError)
			break
		}
		question := q.Question[0]
		rrs, ok := t.answers[key(question.Name, question.Qtype)]
		if !ok {
			m.SetRcode(q, dns.RcodeNameError)
			break
		}
		m.SetRcode(q, dns.RcodeSuccess)
		m.Authoritative = true
		m.Answer = append(m.Answer, rrs...)

	default:
		m.SetRcode(q, dns.RcodeRefused)
	}

	// Reflect the TSIG so signed exchanges validate at the client end
	if rt := q.IsTsig(); rt != nil && w.TsigStatus() == nil {
		m.SetTsig(rt.Hdr.Name, rt.Algorithm, 300, int64(rt.TimeSigned))
	}

	w.WriteMsg(m)
}

func key(name string, rrtype uint16) string {
	return dns.CanonicalName(name) + "/" + dnsutil.TypeToString(rrtype)
}
