package dnsutil

import (
	"github.com/miekg/dns"
)

// ChompCanonicalName makes the name canonical but loses the trailing dot. For logging
// and mock processing where names are often converted to file names, the trailing dot is
// more of a hinderance than a help.
func ChompCanonicalName(n string) string {
	n = dns.CanonicalName(n)
	if len(n) > 0 && n[len(n)-1] == '.' {
		n = n[:len(n)-1]
	}

	return n
}

// Parent strips the leftmost label from a canonical name and returns the enclosing
// name. The second return is false once there is no parent left, which is to say the
// supplied name is the root. The root of "a.b.example.com." is reached via
// "b.example.com.", "example.com.", "com." and finally ".".
func Parent(n string) (string, bool) {
	if len(n) == 0 || n == "." {
		return "", false
	}

	for ix := 0; ix < len(n); ix++ {
		if n[ix] == '.' {
			if ix == len(n)-1 { // Sole trailing dot means parent is root
				return ".", true
			}
			return n[ix+1:], true
		}
	}

	return ".", true // No dot at all - a non-canonical single label
}

// Relativize converts an absolute name into its zone-relative form as used in a dynamic
// update for that zone. The zone apex relativizes to "@". Both names are assumed
// canonical and the name is assumed to be in-domain of the zone - callers should have
// already established that via the zone lookup.
func Relativize(name, zone string) string {
	if name == zone {
		return "@"
	}
	if zone == "." {
		return name[:len(name)-1] // Just lose the trailing dot
	}
	if len(name) > len(zone)+1 {
		return name[:len(name)-len(zone)-1] // Also lose the joining dot
	}

	return name
}
