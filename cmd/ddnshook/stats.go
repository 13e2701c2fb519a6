package main

import (
	"fmt"
)

// serverStats counts webhook dispositions per listener. The struct is copied around by
// value for reporting so it must remain free of reference types.
type serverStats struct {
	requests int // Total requests, whatever became of them

	badMethod    int // Not a POST
	badSignature int // X-Hook-Signature missing or mismatched
	badPayload   int // Unparseable body or wrong model
	badBinding   int // Reconciler rejected the address or name
	queryFailure int // Query-assisted mode could not read current DNS

	snapshots int // Good requests per dispatch path
	syncs     int
	deletes   int
}

func (t *serverStats) add(from *serverStats) {
	t.requests += from.requests
	t.badMethod += from.badMethod
	t.badSignature += from.badSignature
	t.badPayload += from.badPayload
	t.badBinding += from.badBinding
	t.queryFailure += from.queryFailure
	t.snapshots += from.snapshots
	t.syncs += from.syncs
	t.deletes += from.deletes
}

func (t *serverStats) String() string {
	return fmt.Sprintf("req=%d bad=%d/%d/%d/%d qErr=%d good=%d/%d/%d",
		t.requests,
		t.badMethod, t.badSignature, t.badPayload, t.badBinding,
		t.queryFailure,
		t.snapshots, t.syncs, t.deletes)
}
