package dnsutil

import (
	"strings"

	"github.com/miekg/dns"
)

// InDomain returns true if the purported sub-domain is in-domain of the parent
// domain. Both names are made Canonical before any comparison so callers can be sloppy
// about case and trailing dots. In the interest of being "helpful" the parent domain may
// or may not have a leading "." as that is common for a lot of domain storage in this
// program.
func InDomain(sub, parent string) bool {
	if len(parent) == 0 || parent == "." { // Root?
		return true
	}

	parent = dns.CanonicalName(parent)
	if parent[0] == '.' {
		parent = parent[1:]
	}
	sub = dns.CanonicalName(sub)
	if len(sub) < len(parent) {
		return false
	}
	if sub == parent {
		return true
	}

	return strings.HasSuffix(sub, "."+parent)
}
