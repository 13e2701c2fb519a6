package updater

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/resolver"
	"github.com/ddnshook/ddnshook/zone"
)

const applyTimeout = 10 * time.Second // Covers the whole TCP update exchange

// NSUpdate performs RFC2136 dynamic updates against one authoritative primary. Several
// zones typically share a single NSUpdate. Updates always travel over TCP; they carry
// deletes and adds in one transaction and truncation mid-update is not a negotiation
// worth having.
//
// The miekg dns.Client is concurrency safe so concurrent reconciliations can share
// this backend without further ado.
type NSUpdate struct {
	server    string // host:port of the primary
	logName   string // server as given on the command line, for logging
	keyName   string // Canonical TSIG key name; empty means unsigned updates
	algorithm string // Canonical TSIG algorithm name
	secret    string // base64 TSIG secret

	res resolver.Resolver
}

// NewNSUpdate creates a backend for the primary at server (host or host:port; the
// domain service is assumed when absent). A primary named by hostname is resolved to an
// address here, once, so the per-event exchanges don't repeat the lookup. An empty
// keyName means updates go unsigned, which only ever makes sense against a test server.
func NewNSUpdate(server, keyName, secret, algorithm string, res resolver.Resolver) *NSUpdate {
	t := &NSUpdate{
		server:  server,
		logName: server,
		secret:  secret,
		res:     res,
	}
	if _, _, err := net.SplitHostPort(server); err != nil {
		t.server = net.JoinHostPort(server, "domain")
	}
	t.resolveServer()
	if len(keyName) > 0 {
		t.keyName = dns.CanonicalName(keyName)
		t.algorithm = dns.CanonicalName(algorithm)
		if len(algorithm) == 0 {
			t.algorithm = dns.HmacSHA256
		}
	}

	return t
}

// resolveServer replaces a hostname-form server with its first address. A failed lookup
// is not fatal here - the hostname is kept and each exchange resolves it for itself,
// which also gives a primary which was down at startup a chance to come good.
func (t *NSUpdate) resolveServer() {
	host, port, err := net.SplitHostPort(t.server)
	if err != nil || net.ParseIP(host) != nil || t.res == nil {
		return
	}

	ips, err := t.res.LookupIPAddr(context.Background(), host)
	if err != nil || len(ips) == 0 {
		log.Minorf("nsupdate: lookup of %s failed - leaving resolution to each exchange",
			host)
		return
	}
	t.server = net.JoinHostPort(ips[0].String(), port)
}

// Apply translates the op sequence into a single dynamic update message for the zone,
// signs it if a key is configured and exchanges it with the primary. Failures are
// logged here and go no further: the engine has nothing useful to do with them and
// other zones in the same event must still get their updates.
func (t *NSUpdate) Apply(zoneName string, ops []zone.Op) {
	m := new(dns.Msg)
	m.SetUpdate(zoneName)

	for _, op := range ops {
		if log.IfDebug() {
			log.Debugf("nsupdate: %s %s", zoneName, op)
		}
		if err := t.addOp(m, zoneName, op); err != nil {
			log.Majorf("nsupdate: update for %s abandoned: %s", zoneName, err.Error())
			return
		}
	}

	client := &dns.Client{Net: dnsutil.TCPNetwork, Timeout: applyTimeout}
	if len(t.keyName) > 0 {
		client.TsigSecret = map[string]string{t.keyName: t.secret}
		m.SetTsig(t.keyName, t.algorithm, 300, time.Now().Unix())
	}

	r, _, err := client.Exchange(m, t.server)
	if err != nil {
		log.Majorf("nsupdate: update for %s to %s failed: %s",
			zoneName, t.logName, dnsutil.ShortenLookupError(err).Error())
		return
	}
	if r.Rcode != dns.RcodeSuccess {
		log.Majorf("nsupdate: update for %s refused by %s: %s",
			zoneName, t.logName, dnsutil.RcodeToString(r.Rcode))
		return
	}

	log.Minorf("nsupdate: %s applied %d op(s) for %s", t.logName, len(ops), zoneName)
}

// addOp appends one op to the update message. The action set is closed so the switch
// is exhaustive.
func (t *NSUpdate) addOp(m *dns.Msg, zoneName string, op zone.Op) error {
	switch op.Action {
	case zone.Add:
		rr, err := t.rrFor(zoneName, op)
		if err != nil {
			return err
		}
		m.Insert([]dns.RR{rr})

	case zone.Replace:
		rr, err := t.rrFor(zoneName, op)
		if err != nil {
			return err
		}
		m.RemoveRRset([]dns.RR{rrsetCarrier(zoneName, op)})
		m.Insert([]dns.RR{rr})

	case zone.Delete:
		if len(op.Data) == 0 { // Delete all records of the type
			m.RemoveRRset([]dns.RR{rrsetCarrier(zoneName, op)})
			return nil
		}
		rr, err := t.rrFor(zoneName, op)
		if err != nil {
			return err
		}
		m.Remove([]dns.RR{rr})

	default:
		return fmt.Errorf("unknown action %d", op.Action)
	}

	return nil
}

// rrFor builds the concrete RR for an op carrying rdata.
func (t *NSUpdate) rrFor(zoneName string, op zone.Op) (dns.RR, error) {
	hdr := dns.RR_Header{
		Name:   absoluteName(op.Name, zoneName),
		Rrtype: op.Rrtype,
		Class:  dns.ClassINET,
		Ttl:    op.TTL,
	}

	switch op.Rrtype {
	case dns.TypeA:
		ip := net.ParseIP(op.Data)
		if ip == nil || ip.To4() == nil {
			return nil, fmt.Errorf("bad A rdata '%s'", op.Data)
		}
		return &dns.A{Hdr: hdr, A: ip.To4()}, nil

	case dns.TypeAAAA:
		ip := net.ParseIP(op.Data)
		if ip == nil || ip.To4() != nil {
			return nil, fmt.Errorf("bad AAAA rdata '%s'", op.Data)
		}
		return &dns.AAAA{Hdr: hdr, AAAA: ip.To16()}, nil

	case dns.TypePTR:
		return &dns.PTR{Hdr: hdr, Ptr: dns.CanonicalName(op.Data)}, nil
	}

	return nil, fmt.Errorf("unsupported rrtype %s", dnsutil.TypeToString(op.Rrtype))
}

// rrsetCarrier is a data-free RR whose header names the rrset an RemoveRRset targets.
func rrsetCarrier(zoneName string, op zone.Op) dns.RR {
	return &dns.ANY{Hdr: dns.RR_Header{
		Name:   absoluteName(op.Name, zoneName),
		Rrtype: op.Rrtype,
		Class:  dns.ClassINET,
	}}
}

// absoluteName undoes the zone-relative form the batch recorded.
func absoluteName(rel, zoneName string) string {
	if rel == "@" {
		return zoneName
	}
	if zoneName == "." {
		return rel + "."
	}

	return rel + "." + zoneName
}

// Query implements the optional query capability by asking the primary directly with a
// non-recursive query. NXDomain and empty answers are an empty set by contract; only a
// failed exchange or an unexpected rcode is an error.
func (t *NSUpdate) Query(name string, rrtype uint16) ([]dns.RR, error) {
	name = dns.CanonicalName(name)
	q := dns.Question{Name: name, Qtype: rrtype, Qclass: dns.ClassINET}
	r, _, err := t.res.FullExchange(context.Background(), resolver.NewExchangeConfig(),
		q, t.server, t.logName)
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
