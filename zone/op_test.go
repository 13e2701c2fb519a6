package zone

import (
	"testing"

	"github.com/miekg/dns"
)

func TestOpString(t *testing.T) {
	testCases := []struct {
		op     Op
		expect string
	}{
		{Op{Action: Add, Name: "host", TTL: 3600, Rrtype: dns.TypeA, Data: "192.0.2.1"},
			"add host 3600 A 192.0.2.1"},
		{Op{Action: Replace, Name: "10", TTL: 600, Rrtype: dns.TypePTR,
			Data: "host.example.com."},
			"replace 10 600 PTR host.example.com."},
		{Op{Action: Delete, Name: "host", Rrtype: dns.TypeAAAA, Data: "2001:db8::1"},
			"delete host AAAA 2001:db8::1"},
		{Op{Action: Delete, Name: "host", Rrtype: dns.TypeA}, // Delete-all-of-type
			"delete host A"},
	}

	for ix, tc := range testCases {
		if got := tc.op.String(); got != tc.expect {
			t.Error(ix, "Mismatch. Got", got, "expect", tc.expect)
		}
	}
}

func TestActionString(t *testing.T) {
	if Add.String() != "add" || Replace.String() != "replace" || Delete.String() != "delete" {
		t.Error("Action strings wrong")
	}
	if Action(99).String() != "?" {
		t.Error("Unknown action should render as ?")
	}
}
