package zone

import (
	"strconv"
	"strings"

	"github.com/ddnshook/ddnshook/dnsutil"
)

// Action says what an Op does to the rrset at its name. The set is closed: backends
// switch over it exhaustively when translating an Op into their protocol.
type Action int

const (
	Add Action = iota
	Replace
	Delete
)

func (t Action) String() string {
	switch t {
	case Add:
		return "add"
	case Replace:
		return "replace"
	case Delete:
		return "delete"
	}

	return "?"
}

// Op is one pending record operation within a batch. Name is relative to the zone the
// Op was batched under - the conversion from absolute form happens when the Op is
// recorded, not later, because backends only ever deal in zone-relative names. TTL is
// only meaningful for Add and Replace. An empty Data on Delete means delete all records
// of Rrtype at Name.
type Op struct {
	Action Action
	Name   string
	TTL    uint32
	Rrtype uint16
	Data   string
}

// String renders the Op the way it would appear in an nsupdate script, which makes
// debug logs directly comparable with manual update runs.
func (t Op) String() string {
	parts := []string{t.Action.String(), t.Name}
	if t.Action != Delete {
		parts = append(parts, strconv.FormatUint(uint64(t.TTL), 10))
	}
	parts = append(parts, dnsutil.TypeToString(t.Rrtype))
	if len(t.Data) > 0 {
		parts = append(parts, t.Data)
	}

	return strings.Join(parts, " ")
}
