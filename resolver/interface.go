package resolver

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
)

const (
	defaultSingleExchangeTimeout = 4 * time.Second // Also applies to LookupIPAddr
	defaultFullExchangeTimeout   = 3 * defaultSingleExchangeTimeout
	defaultQueryTries            = 2 // Total number of exchange attempts
)

// ExchangeConfig carries the few per-exchange settings this program varies. It's
// defined as an interface rather than a struct to enforce use of the constructors which
// set defaults. Authoritative exchanges - updates and queries aimed straight at a
// zone's primary - never want recursion; the generic fallback resolver does.
type ExchangeConfig interface {
	Net() string
	UDPSize() uint16
	Recurse() bool
	setNet(s string)
}

type exchangeConfig struct {
	net     string
	udpSize uint16
	recurse bool
}

func (t *exchangeConfig) Net() string     { return t.net }
func (t *exchangeConfig) UDPSize() uint16 { return t.udpSize }
func (t *exchangeConfig) Recurse() bool   { return t.recurse }
func (t *exchangeConfig) setNet(s string) { t.net = s }

// NewExchangeConfig returns a config for non-recursive (authoritative) exchanges.
func NewExchangeConfig() *exchangeConfig {
	return &exchangeConfig{net: dnsutil.UDPNetwork, udpSize: dnsutil.MaxUDPSize}
}

// NewRecursiveExchangeConfig returns a config for exchanges with a recursive resolver.
func NewRecursiveExchangeConfig() *exchangeConfig {
	return &exchangeConfig{net: dnsutil.UDPNetwork, udpSize: dnsutil.MaxUDPSize, recurse: true}
}

// Resolver collects every resolver function this program uses which reaches out to the
// network. Implementations must be safe for concurrent use; both net.Resolver and
// miekg's dns.Client claim to be, so the real implementation inherits that.
type Resolver interface {

	// LookupIPAddr is similar to net.Resolver.LookupIPAddr. It derives a
	// WithDeadline context from the supplied context so the caller need not worry
	// about timeouts.
	LookupIPAddr(context.Context, string) ([]net.IP, error)

	// SingleExchange is a shim for the github.com/miekg/dns ExchangeContext
	// function: one exchange attempt with the server, no retries, no fallback to
	// TCP. See FullExchange for that capability.
	//
	// The dns.Msg must be fully formed with all flags and Id set as needed by the
	// caller. logName only aids logging, normally with the domain name of a server
	// which is otherwise identified by address.
	SingleExchange(ctx context.Context, c ExchangeConfig, q *dns.Msg,
		server, logName string) (r *dns.Msg, rtt time.Duration, err error)

	// FullExchange wraps SingleExchange with retries, an overall deadline and
	// truncation fallback to TCP. It forms the dns.Msg itself from the supplied
	// question, honouring ExchangeConfig.Recurse.
	FullExchange(ctx context.Context, c ExchangeConfig, q dns.Question,
		server, logName string) (r *dns.Msg, rtt time.Duration, err error)
}
