package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidateOptions(t *testing.T) {
	secretPath := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(secretPath, []byte("hook-secret\n"), 0600); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		setup  func(cfg *config)
		expect string // Contained in the error, empty for success
	}{
		{func(cfg *config) {}, ""},
		{func(cfg *config) { cfg.TTL = time.Millisecond }, "--TTL"},
		{func(cfg *config) { cfg.reportInterval = time.Millisecond }, "--report"},
		{func(cfg *config) { cfg.reportInterval = 0 }, ""}, // Zero disables reports
		{func(cfg *config) { cfg.zonesFile = "" }, "--config"},
		{func(cfg *config) { cfg.secretFile = "/no/such/file" }, "--secret-file"},
		{func(cfg *config) { cfg.secretFile = secretPath }, ""},
	}

	for ix, tc := range testCases {
		hook := newDDNSHook(nil, nil)
		hook.cfg.TTL = time.Hour
		hook.cfg.reportInterval = time.Hour
		hook.cfg.zonesFile = "zones.yaml"
		tc.setup(hook.cfg)

		err := hook.ValidateCommandLineOptions()
		if len(tc.expect) == 0 {
			if err != nil {
				t.Error(ix, "Unexpected error", err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.expect) {
			t.Error(ix, "Expected error containing", tc.expect, "got", err)
		}
	}
}

func TestValidateDerivedValues(t *testing.T) {
	secretPath := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(secretPath, []byte("  hook-secret\n"), 0600); err != nil {
		t.Fatal(err)
	}

	hook := newDDNSHook(nil, nil)
	hook.cfg.TTL = 90 * time.Minute
	hook.cfg.reportInterval = time.Hour
	hook.cfg.zonesFile = "zones.yaml"
	hook.cfg.secretFile = secretPath
	hook.cfg.resolverServer = "192.0.2.53"

	if err := hook.ValidateCommandLineOptions(); err != nil {
		t.Fatal("Validation failed", err)
	}
	if hook.cfg.TTLAsSecs != 5400 {
		t.Error("TTL conversion wrong", hook.cfg.TTLAsSecs)
	}
	if len(hook.cfg.listen) != 1 || hook.cfg.listen[0] != defaultListen {
		t.Error("Default listen not applied", hook.cfg.listen)
	}
	if string(hook.cfg.secret) != "hook-secret" { // Whitespace chomped
		t.Error("Secret not loaded and trimmed:", string(hook.cfg.secret))
	}
	if hook.cfg.resolverServer != "192.0.2.53:domain" {
		t.Error("Resolver service not coerced", hook.cfg.resolverServer)
	}
}

func TestNormalizeHostPort(t *testing.T) {
	testCases := []struct {
		input, expect string
	}{
		{"127.0.0.1", "127.0.0.1:7001"},
		{"::1", "[::1]:7001"},
		{":8080", ":8080"},
		{"host.example.net", "host.example.net:7001"},
		{"host.example.net:8080", "host.example.net:8080"},
	}

	for ix, tc := range testCases {
		got := normalizeHostPort(tc.input, defaultService)
		if got != tc.expect {
			t.Error(ix, "normalizeHostPort Got", got, "expect", tc.expect)
		}
	}
}
