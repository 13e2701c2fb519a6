package updater

import (
	"context"
	"fmt"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
	"github.com/ddnshook/ddnshook/resolver"
)

// ResolverQuery is the fallback query capability: a recursive lookup thru a general
// purpose resolver for zones whose backend cannot be queried directly. Answers may be
// cached and thus a little behind the authoritative truth, which is why it is only the
// fallback.
type ResolverQuery struct {
	server  string
	logName string
	res     resolver.Resolver
}

func NewResolverQuery(server string, res resolver.Resolver) *ResolverQuery {
	return &ResolverQuery{server: server, logName: server, res: res}
}

// Query satisfies the Queryer contract: NXDomain and NoData are an empty set, a failed
// exchange or a refusal is an error.
func (t *ResolverQuery) Query(name string, rrtype uint16) ([]dns.RR, error) {
	name = dns.CanonicalName(name)
	q := dns.Question{Name: name, Qtype: rrtype, Qclass: dns.ClassINET}
	r, _, err := t.res.FullExchange(context.Background(),
		resolver.NewRecursiveExchangeConfig(), q, t.server, t.logName)
	if err != nil {
		return nil, err
	}

	switch r.Rcode {
	case dns.RcodeNameError:
		return nil, nil
	case dns.RcodeSuccess:
	default:
		return nil, fmt.Errorf("query for %s refused by %s: %s",
			name, t.logName, dnsutil.RcodeToString(r.Rcode))
	}

	rrs := make([]dns.RR, 0, len(r.Answer))
	for _, rr := range r.Answer {
		if rr.Header().Rrtype == rrtype && dns.CanonicalName(rr.Header().Name) == name {
			rrs = append(rrs, rr)
		}
	}

	return rrs, nil
}
