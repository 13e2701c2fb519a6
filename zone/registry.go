package zone

import (
	"fmt"
	"sort"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
)

// Updater is the required capability of a zone backend. Apply performs the protocol
// level update for the zone and reports any failure via its own logging - deliberately
// not via a return value. A failed zone never blocks or unwinds updates to other zones
// as cross-zone atomicity is not something the DNS can offer anyway.
type Updater interface {
	Apply(zoneName string, ops []Op)
}

// Queryer is the optional capability of a zone backend: fetch the current rrset of
// (name, rrtype) from the authoritative source. Name is absolute. NXDomain and empty
// answers must be returned as an empty slice with a nil error; a non-nil error means
// the query could not be performed at all.
type Queryer interface {
	Query(name string, rrtype uint16) ([]dns.RR, error)
}

// A Zone associates one authoritative zone name with its backend. Queryer is nil when
// the backend cannot be queried - an explicit capability marker set at construction
// rather than something discovered by poking at the Updater's type.
type Zone struct {
	Name    string // Canonical absolute zone name
	Updater Updater
	Queryer Queryer
}

// Registry maps zone names to their Zone. It is populated during startup and read-only
// thereafter which is what makes lock-free concurrent reconciliations safe.
type Registry struct {
	zones map[string]*Zone
}

func NewRegistry() *Registry {
	return &Registry{zones: make(map[string]*Zone)}
}

// Add registers the zone under its canonical name. Duplicates and zones without an
// Updater are construction mistakes and thus errors.
func (t *Registry) Add(z *Zone) error {
	if z.Updater == nil {
		return fmt.Errorf("Zone '%s' has no updater", z.Name)
	}
	labs, ok := dns.IsDomainName(z.Name)
	if !ok || (labs == 0 && z.Name != ".") {
		return fmt.Errorf("Invalid zone name '%s'", z.Name)
	}
	z.Name = dns.CanonicalName(z.Name)
	if _, dup := t.zones[z.Name]; dup {
		return fmt.Errorf("Duplicate zone '%s'", z.Name)
	}
	t.zones[z.Name] = z

	return nil
}

// Resolve maps a name to its enclosing registered zone, or (nil, false) if no
// registered zone encloses it. The walk starts at the exact name and climbs thru
// successive parents doing exact lookups, so when one registered zone sits below
// another the more specific one always claims its names.
func (t *Registry) Resolve(name string) (*Zone, bool) {
	name = dns.CanonicalName(name)
	for {
		if z, ok := t.zones[name]; ok {
			return z, true
		}
		parent, ok := dnsutil.Parent(name)
		if !ok {
			return nil, false
		}
		name = parent
	}
}

func (t *Registry) Len() int {
	return len(t.zones)
}

// Names returns the registered zone names in sorted order. Mostly for startup logging.
func (t *Registry) Names() []string {
	names := make([]string, 0, len(t.zones))
	for n := range t.zones {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}
