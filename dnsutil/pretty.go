package dnsutil

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// The Pretty* functions return a compact rendition of various dns structures. The
// standard String() methods aim for dig-style output which is far too verbose for
// single-line logging.

// PrettyMsg1 returns a compact string representing the complete message.
func PrettyMsg1(m *dns.Msg) string {
	h := m.MsgHdr
	flags := []string{}
	if h.Response {
		flags = append(flags, "qr")
	}
	if h.Authoritative {
		flags = append(flags, "aa")
	}
	if h.Truncated {
		flags = append(flags, "tc")
	}

	qTypes := make([]string, 0)
	aTypes := make([]string, 0)
	nTypes := make([]string, 0)
	eTypes := make([]string, 0)
	for _, q := range m.Question {
		qTypes = append(qTypes, TypeToString(q.Qtype))
	}
	for _, rr := range m.Answer {
		aTypes = append(aTypes, TypeToString(rr.Header().Rrtype))
	}
	for _, rr := range m.Ns {
		nTypes = append(nTypes, TypeToString(rr.Header().Rrtype))
	}
	for _, rr := range m.Extra {
		eTypes = append(eTypes, TypeToString(rr.Header().Rrtype))
	}
	return fmt.Sprintf("%d f=%s %s Q=%d-%s Ans=%d-%s Ns=%d-%s Extra=%d-%s",
		h.Id, strings.Join(flags, "+"), RcodeToString(h.Rcode),
		len(m.Question), strings.Join(qTypes, ","),
		len(m.Answer), strings.Join(aTypes, ","),
		len(m.Ns), strings.Join(nTypes, ","),
		len(m.Extra), strings.Join(eTypes, ","))
}

// PrettyQuestion returns a compact representation of the dns.Question
func PrettyQuestion(q dns.Question) string {
	return fmt.Sprintf("%s/%s %s",
		ClassToString(dns.Class(q.Qclass)),
		TypeToString(q.Qtype),
		q.Name)
}

// PrettyRR returns a compact representation of the single RR. The record types this
// program traffics in get special treatment while all others fall back to the general
// rendering offered by miekg.
func PrettyRR(rr dns.RR, includeName bool) (s string) {
	if includeName {
		s = rr.Header().Name + " "
	}
	switch rrt := rr.(type) {
	case *dns.A:
		s += fmt.Sprintf("%s/%s %d %s",
			ClassToString(dns.Class(rrt.Hdr.Class)), TypeToString(rrt.Hdr.Rrtype),
			rrt.Hdr.Ttl, rrt.A.String())
	case *dns.AAAA:
		s += fmt.Sprintf("%s/%s %d %s",
			ClassToString(dns.Class(rrt.Hdr.Class)), TypeToString(rrt.Hdr.Rrtype),
			rrt.Hdr.Ttl, rrt.AAAA.String())
	case *dns.PTR:
		s += fmt.Sprintf("%s/%s %d %s",
			ClassToString(dns.Class(rrt.Hdr.Class)), TypeToString(rrt.Hdr.Rrtype),
			rrt.Hdr.Ttl, rrt.Ptr)
	default:
		s = rr.String()
	}

	return
}

// PrettyRRSet returns a compact representation of the slice of RRs, comma separated.
func PrettyRRSet(rrs []dns.RR, includeName bool) string {
	ar := make([]string, 0, len(rrs))
	for _, rr := range rrs {
		ar = append(ar, PrettyRR(rr, includeName))
	}

	return strings.Join(ar, ", ")
}
