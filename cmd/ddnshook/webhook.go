package main

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/reconcile"
)

const (
	signatureHeader = "X-Hook-Signature"
	wantedModel     = "ipaddress"
	deletedEvent    = "deleted"

	maxBodySize = 1 << 20 // Webhook bodies are tiny; anything near this is hostile
)

// hookPayload is the subset of the notification body this program acts on. The sender
// includes a great deal more which is deliberately ignored.
type hookPayload struct {
	Model     string `json:"model"`
	Event     string `json:"event"`
	Snapshots struct {
		Prechange  *hookBinding `json:"prechange"`
		Postchange *hookBinding `json:"postchange"`
	} `json:"snapshots"`
}

type hookBinding struct {
	Address string `json:"address"` // CIDR form, e.g. "192.0.2.1/24"
	DNSName string `json:"dns_name"`
}

// address returns the bare address with the CIDR prefix length stripped. A nil receiver
// stands in for an absent snapshot.
func (t *hookBinding) address() string {
	if t == nil {
		return ""
	}
	addr, _, _ := strings.Cut(t.Address, "/")

	return addr
}

func (t *hookBinding) name() string {
	if t == nil {
		return ""
	}

	return t.DNSName
}

func (t *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var stats serverStats
	stats.requests++
	defer func() { t.addStats(&stats) }()

	w.Header().Set("Content-Type", "text/plain")

	if r.Method != http.MethodPost {
		stats.badMethod++
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		stats.badPayload++
		http.Error(w, "Body read failed", http.StatusBadRequest)
		return
	}

	if len(t.cfg.secret) > 0 && !validSignature(t.cfg.secret, body, r.Header.Get(signatureHeader)) {
		stats.badSignature++
		log.Minorf("webhook: %s missing or invalid from %s", signatureHeader, r.RemoteAddr)
		http.Error(w, signatureHeader+" missing or invalid", http.StatusForbidden)
		return
	}

	var payload hookPayload
	if err = json.Unmarshal(body, &payload); err != nil {
		stats.badPayload++
		http.Error(w, "Malformed JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Model != wantedModel {
		stats.badPayload++
		http.Error(w, "Wrong model", http.StatusBadRequest)
		return
	}

	rec := t.getReconciler()
	if rec == nil { // Startup window before the first zones file load
		http.Error(w, "Not ready", http.StatusServiceUnavailable)
		return
	}

	err = t.dispatch(rec, &payload, &stats)
	switch {
	case err == nil:
		io.WriteString(w, "OK\n")
	case errors.Is(err, reconcile.ErrValidation):
		stats.badBinding++
		log.Minorf("webhook: rejected: %s", err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		stats.queryFailure++
		log.Majorf("webhook: reconciliation failed: %s", err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// dispatch picks the reconciliation path for a payload. Snapshot mode trusts the
// before and after images as sent - an absent after image simply leaves the new side
// empty, which removes the old records. Query-assisted mode only takes the desired
// after state and reads the rest from the DNS; a deletion event has no after state to
// sync towards so it falls back to removing exactly what the before image names.
func (t *server) dispatch(rec *reconcile.Reconciler, payload *hookPayload,
	stats *serverStats) error {
	pre := payload.Snapshots.Prechange
	post := payload.Snapshots.Postchange

	if t.cfg.queryAssistedFlag {
		if post == nil && payload.Event == deletedEvent {
			stats.deletes++
			return rec.DeleteBinding(pre.address(), pre.name())
		}
		stats.syncs++
		return rec.Sync(post.address(), post.name())
	}

	stats.snapshots++
	return rec.Snapshot(pre.address(), pre.name(), post.address(), post.name())
}

// validSignature checks the hex HMAC-SHA512 of the raw body against the header value in
// constant time.
func validSignature(secret, body []byte, header string) bool {
	mac := hmac.New(sha512.New, secret)
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(want), []byte(header))
}
