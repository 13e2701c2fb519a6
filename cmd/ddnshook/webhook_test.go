package main

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/mock"
	"github.com/ddnshook/ddnshook/reconcile"
	"github.com/ddnshook/ddnshook/zone"
)

// newWebhookServer wires a server straight to a reconciler over a recording updater,
// bypassing the zones file and the listener.
func newWebhookServer(t *testing.T, cfg *config) (*mock.Updater, *server) {
	t.Helper()
	log.SetLevel(log.SilentLevel)
	if cfg == nil {
		cfg = newConfig()
	}
	cfg.TTLAsSecs = 600

	u := mock.NewUpdater()
	reg := zone.NewRegistry()
	for _, n := range []string{"example.com.", "in-addr.arpa."} {
		if err := reg.Add(&zone.Zone{Name: n, Updater: u, Queryer: u}); err != nil {
			t.Fatal(err)
		}
	}

	srv := newServer(cfg, defaultListen)
	srv.setReconciler(reconcile.NewReconciler(reg, nil, cfg.TTLAsSecs))

	return u, srv
}

func postWebhook(srv *server, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	if len(signature) > 0 {
		req.Header.Set(signatureHeader, signature)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	return w
}

func signBody(secret, body string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(body))

	return hex.EncodeToString(mac.Sum(nil))
}

const updatedPayload = `{
 "event": "updated",
 "model": "ipaddress",
 "snapshots": {
  "prechange": {"address": "192.0.2.1/24", "dns_name": "h.example.com"},
  "postchange": {"address": "192.0.2.2/24", "dns_name": "h.example.com"}
 }
}`

func TestWebhookSnapshot(t *testing.T) {
	u, srv := newWebhookServer(t, nil)

	w := postWebhook(srv, updatedPayload, "")
	if w.Code != http.StatusOK {
		t.Fatal("Expected 200, got", w.Code, w.Body.String())
	}

	expFwd := []string{
		"delete h A 192.0.2.1",
		"add h 600 A 192.0.2.2",
	}
	expRev := []string{
		"delete 1.2.0.192 PTR h.example.com.",
		"add 2.2.0.192 600 PTR h.example.com.",
	}
	if got := u.OpStrings("example.com."); !reflect.DeepEqual(got, expFwd) {
		t.Error("Forward ops mismatch. Got", got, "expect", expFwd)
	}
	if got := u.OpStrings("in-addr.arpa."); !reflect.DeepEqual(got, expRev) {
		t.Error("Reverse ops mismatch. Got", got, "expect", expRev)
	}
	if srv.stats.snapshots != 1 {
		t.Error("Snapshot not counted", srv.stats)
	}
}

func TestWebhookSignature(t *testing.T) {
	cfg := newConfig()
	cfg.secret = []byte("hook-secret")
	u, srv := newWebhookServer(t, cfg)

	w := postWebhook(srv, updatedPayload, "")
	if w.Code != http.StatusForbidden {
		t.Error("Missing signature should be 403, got", w.Code)
	}
	w = postWebhook(srv, updatedPayload, signBody("wrong-secret", updatedPayload))
	if w.Code != http.StatusForbidden {
		t.Error("Bad signature should be 403, got", w.Code)
	}
	if u.Zones() != 0 {
		t.Fatal("Unauthenticated requests must not reach the reconciler")
	}

	w = postWebhook(srv, updatedPayload, signBody("hook-secret", updatedPayload))
	if w.Code != http.StatusOK {
		t.Error("Good signature should be 200, got", w.Code, w.Body.String())
	}
	if u.Zones() == 0 {
		t.Error("Authenticated request did not reconcile")
	}
	if srv.stats.badSignature != 2 {
		t.Error("Signature failures not counted", srv.stats)
	}
}

func TestWebhookRejections(t *testing.T) {
	u, srv := newWebhookServer(t, nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Error("GET should be 405, got", w.Code)
	}

	if w = postWebhook(srv, "{ not json", ""); w.Code != http.StatusBadRequest {
		t.Error("Malformed JSON should be 400, got", w.Code)
	}
	if w = postWebhook(srv, `{"model": "device", "snapshots": {}}`, ""); w.Code != http.StatusBadRequest {
		t.Error("Wrong model should be 400, got", w.Code)
	}

	badBinding := `{"model": "ipaddress", "event": "created",
 "snapshots": {"prechange": null,
  "postchange": {"address": "not-an-ip/24", "dns_name": "h.example.com"}}}`
	if w = postWebhook(srv, badBinding, ""); w.Code != http.StatusBadRequest {
		t.Error("Unparsable address should be 400, got", w.Code)
	}

	if u.Zones() != 0 {
		t.Error("Rejected requests committed operations", u.Zones())
	}
	if srv.stats.badMethod != 1 || srv.stats.badPayload != 2 || srv.stats.badBinding != 1 {
		t.Error("Rejection counters wrong", srv.stats)
	}
}

func TestWebhookDeleted(t *testing.T) {
	deleted := `{"model": "ipaddress", "event": "deleted",
 "snapshots": {
  "prechange": {"address": "192.0.2.1/24", "dns_name": "h.example.com"},
  "postchange": null}}`

	// Snapshot mode: the empty after image removes the old records
	u, srv := newWebhookServer(t, nil)
	if w := postWebhook(srv, deleted, ""); w.Code != http.StatusOK {
		t.Fatal("Expected 200, got", w.Code, w.Body.String())
	}
	expFwd := []string{"delete h A 192.0.2.1"}
	if got := u.OpStrings("example.com."); !reflect.DeepEqual(got, expFwd) {
		t.Error("Forward ops mismatch. Got", got)
	}

	// Query-assisted mode routes deletions thru the delete-only path
	cfg := newConfig()
	cfg.queryAssistedFlag = true
	u, srv = newWebhookServer(t, cfg)
	if w := postWebhook(srv, deleted, ""); w.Code != http.StatusOK {
		t.Fatal("Expected 200, got", w.Code, w.Body.String())
	}
	if got := u.OpStrings("example.com."); !reflect.DeepEqual(got, expFwd) {
		t.Error("Forward ops mismatch. Got", got)
	}
	if srv.stats.deletes != 1 {
		t.Error("Delete not counted", srv.stats)
	}
}

func TestWebhookQueryAssisted(t *testing.T) {
	cfg := newConfig()
	cfg.queryAssistedFlag = true
	u, srv := newWebhookServer(t, cfg)

	// The mock answers show a stale forward record which snapshot mode would miss
	u.SetAnswer("h.example.com.", dns.TypeA, "h.example.com. 600 IN A 192.0.2.9")
	u.SetAnswer("2.2.0.192.in-addr.arpa.", dns.TypePTR) // NoData

	if w := postWebhook(srv, updatedPayload, ""); w.Code != http.StatusOK {
		t.Fatal("Expected 200, got", w.Code, w.Body.String())
	}
	expFwd := []string{
		"delete h A 192.0.2.9",
		"add h 600 A 192.0.2.2",
	}
	if got := u.OpStrings("example.com."); !reflect.DeepEqual(got, expFwd) {
		t.Error("Forward ops mismatch. Got", got, "expect", expFwd)
	}
	if srv.stats.syncs != 1 {
		t.Error("Sync not counted", srv.stats)
	}
}

func TestWebhookNotReady(t *testing.T) {
	cfg := newConfig()
	srv := newServer(cfg, defaultListen) // No reconciler yet

	if w := postWebhook(srv, updatedPayload, ""); w.Code != http.StatusServiceUnavailable {
		t.Error("Expected 503 before first zones load, got", w.Code)
	}
}
