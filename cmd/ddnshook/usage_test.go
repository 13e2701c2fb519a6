package main

import (
	"strings"
	"testing"

	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/mock"
)

func TestUsage(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)
	cfg := newConfig()
	hook := newDDNSHook(cfg, nil)

	testCases := []struct {
		options string
		expect  string
		result  parseResult
	}{
		{"", "", parseContinue},
		{"-h", "SYNOPSIS", parseStop},
		{"--help", "SYNOPSIS", parseStop},
		{"-v", "Program:", parseStop},
		{"--version", "Program:", parseStop},
		{"goop", "goop", parseFailed},
		{"-X", "unknown shorthand flag", parseFailed},
		{"--TTL 10m --TTL 20m", "Duplicate option", parseFailed},
		{"--listen 127.0.0.1 --listen ::1", "", parseContinue}, // This duplicate is ok
		{"--config zones.yaml --secret-file secret" +
			" --listen ::1 --listen 127.0.0.1" +
			" --query-assisted --resolver 127.0.0.1" +
			" --TTL 45m --report 4h" +
			" --user u --group g --chroot /root" +
			" --log-major --log-minor --log-debug=true", "", parseContinue}, // Every legit option
	}

	for ix, tc := range testCases {
		var opts []string
		if len(tc.options) > 0 {
			opts = strings.Split(tc.options, " ")
		}
		args := []string{programName}
		args = append(args, opts...)
		out.Reset()
		res := hook.parseOptions(args)
		if res != tc.result {
			t.Error(ix, "Results mismatch. Want", tc.result, "got", res)
		}
		got := out.String()
		if len(tc.expect) == 0 && len(got) != 0 {
			t.Error(ix, "Did not expect any output, but got", len(got), got)
		}
		if len(tc.expect) > 0 {
			if !strings.Contains(got, tc.expect) {
				t.Error(ix, "Output does not contain", tc.expect, "got", got)
			}
		}
	}
}

func TestUsageValuesTransfer(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)
	hook := newDDNSHook(nil, nil)

	args := strings.Split(programName+
		" --config /etc/ddnshook/zones.yaml --secret-file /etc/ddnshook/secret"+
		" --listen :8080 --query-assisted --resolver 192.0.2.53 --TTL 30m", " ")
	if res := hook.parseOptions(args); res != parseContinue {
		t.Fatal("Options did not parse", res, out.String())
	}

	cfg := hook.cfg
	if cfg.zonesFile != "/etc/ddnshook/zones.yaml" {
		t.Error("zonesFile not transferred", cfg.zonesFile)
	}
	if cfg.secretFile != "/etc/ddnshook/secret" {
		t.Error("secretFile not transferred", cfg.secretFile)
	}
	if len(cfg.listen) != 1 || cfg.listen[0] != ":8080" {
		t.Error("listen not transferred", cfg.listen)
	}
	if !cfg.queryAssistedFlag {
		t.Error("query-assisted not transferred")
	}
	if cfg.resolverServer != "192.0.2.53" {
		t.Error("resolver not transferred", cfg.resolverServer)
	}
	if cfg.TTL.Minutes() != 30 {
		t.Error("TTL not transferred", cfg.TTL)
	}
}
