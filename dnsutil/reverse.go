package dnsutil

import (
	"fmt"

	"github.com/miekg/dns"
)

// ReverseName converts an IP address in textual form into its reverse lookup name in
// the in-addr.arpa. or ip6.arpa. tree. An unparsable address returns an error; that is
// the sole address validation performed by this program so callers rely on it to reject
// malformed webhook input before any update is constructed.
func ReverseName(address string) (string, error) {
	arpa, err := dns.ReverseAddr(address)
	if err != nil {
		return "", fmt.Errorf("Invalid IP address '%s': %w", address, err)
	}

	return arpa, nil
}
