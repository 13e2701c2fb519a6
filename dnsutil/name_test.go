package dnsutil

import (
	"testing"
)

func TestParent(t *testing.T) {
	testCases := []struct {
		input  string
		expect string
		ok     bool
	}{
		{"a.b.example.com.", "b.example.com.", true},
		{"b.example.com.", "example.com.", true},
		{"example.com.", "com.", true},
		{"com.", ".", true},
		{".", "", false},
		{"", "", false},
		{"nodot", ".", true},
	}

	for ix, tc := range testCases {
		got, ok := Parent(tc.input)
		if ok != tc.ok {
			t.Error(ix, "Wrong ok for", tc.input, ok)
			continue
		}
		if got != tc.expect {
			t.Error(ix, "Mismatch. Input:", tc.input, "got", got, "expect", tc.expect)
		}
	}
}

func TestRelativize(t *testing.T) {
	testCases := []struct{ name, zone, expect string }{
		{"host.example.com.", "example.com.", "host"},
		{"a.b.example.com.", "example.com.", "a.b"},
		{"example.com.", "example.com.", "@"},
		{"10.2.0.192.in-addr.arpa.", "2.0.192.in-addr.arpa.", "10"},
		{"host.example.com.", ".", "host.example.com"},
	}

	for ix, tc := range testCases {
		got := Relativize(tc.name, tc.zone)
		if got != tc.expect {
			t.Error(ix, "Mismatch. Got", got, "expect", tc.expect)
		}
	}
}

func TestChompCanonicalName(t *testing.T) {
	testCases := []struct{ input, expect string }{
		{"ExAmple.COM.", "example.com"},
		{"example.com", "example.com"},
		{".", ""},
		{"", ""},
	}

	for ix, tc := range testCases {
		got := ChompCanonicalName(tc.input)
		if got != tc.expect {
			t.Error(ix, "Mismatch. Got", got, "expect", tc.expect)
		}
	}
}
