package resolver

import (
	"context"
	"net"
	"time"

	"github.com/ddnshook/ddnshook/log"
)

type resolver struct {
	netResolver net.Resolver

	// The timeout and retry values cannot currently be changed from the defaults.
	// Nothing has needed to adjust them yet.
	singleExchangeTimeout, fullExchangeTimeout time.Duration

	queryTries int
}

// NewResolver creates a fully formed resolver which is ready to use.
func NewResolver() *resolver {
	t := &resolver{
		singleExchangeTimeout: defaultSingleExchangeTimeout,
		fullExchangeTimeout:   defaultFullExchangeTimeout,
		queryTries:            defaultQueryTries,
	}

	return t
}

func (t *resolver) LookupIPAddr(ctx context.Context, host string) ([]net.IP, error) {
	ctxWithTO, cancel := context.WithDeadline(ctx, time.Now().Add(t.singleExchangeTimeout))
	defer cancel()
	addrs, err := t.netResolver.LookupIPAddr(ctxWithTO, host)
	if log.IfDebug() {
		LogIP(host, addrs, "", err)
	}
	if err != nil {
		return []net.IP{}, err
	}

	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		ips = append(ips, a.IP)
	}

	return ips, nil
}
