package updater

import (
	"fmt"
	"io"

	"github.com/ddnshook/ddnshook/zone"
)

// Dummy is a backend which prints the operations it is given and changes nothing. Wire
// a zone to it to see what the engine would do before trusting it with a real primary.
// Dummy deliberately has no query capability so reconciliation behaves exactly as it
// does for a write-only backend.
type Dummy struct {
	out io.Writer
}

func NewDummy(out io.Writer) *Dummy {
	return &Dummy{out: out}
}

// Apply prints the would-be update in the same one-op-per-line form the debug log uses.
func (t *Dummy) Apply(zoneName string, ops []zone.Op) {
	fmt.Fprintf(t.out, "dummy: zone %s %d op(s)\n", zoneName, len(ops))
	for _, op := range ops {
		fmt.Fprintf(t.out, "dummy:   %s\n", op)
	}
}
