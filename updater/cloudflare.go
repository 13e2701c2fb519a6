package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/miekg/dns"

	"github.com/ddnshook/ddnshook/dnsutil"
	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/zone"
)

// Cloudflare drives a zone hosted on Cloudflare thru their v4 API instead of RFC2136.
// The API is record-at-a-time so a batch is not atomic here; each op stands alone and a
// failed op is logged and skipped while the rest of the batch proceeds, which is the
// closest the API allows to the non-transactional commit contract.
type Cloudflare struct {
	zoneName string // Canonical, with trailing dot
	api      *cloudflare.API
	rc       *cloudflare.ResourceContainer
}

// NewCloudflare resolves the zone name to its Cloudflare zone ID once, at construction,
// so a bad token or an unknown zone surfaces at startup rather than mid-reconciliation.
func NewCloudflare(apiToken, zoneName string) (*Cloudflare, error) {
	api, err := cloudflare.NewWithAPIToken(apiToken)
	if err != nil {
		return nil, err
	}
	zoneID, err := api.ZoneIDByName(chompDot(dns.CanonicalName(zoneName)))
	if err != nil {
		return nil, fmt.Errorf("cloudflare zone '%s': %w", zoneName, err)
	}

	return &Cloudflare{
		zoneName: dns.CanonicalName(zoneName),
		api:      api,
		rc:       cloudflare.ZoneIdentifier(zoneID),
	}, nil
}

func (t *Cloudflare) Apply(zoneName string, ops []zone.Op) {
	ctx := context.Background()
	applied := 0
	for _, op := range ops {
		if log.IfDebug() {
			log.Debugf("cloudflare: %s %s", zoneName, op)
		}
		if err := t.applyOp(ctx, op); err != nil {
			log.Majorf("cloudflare: %s for %s failed: %s", op.Action, zoneName, err.Error())
			continue
		}
		applied++
	}

	log.Minorf("cloudflare: applied %d/%d op(s) for %s", applied, len(ops), zoneName)
}

func (t *Cloudflare) applyOp(ctx context.Context, op zone.Op) error {
	name := t.apiName(op.Name)
	typ := dnsutil.TypeToString(op.Rrtype)

	switch op.Action {
	case zone.Add:
		return t.create(ctx, name, typ, op)

	case zone.Replace:
		if err := t.deleteMatching(ctx, name, typ, ""); err != nil {
			return err
		}
		return t.create(ctx, name, typ, op)

	case zone.Delete:
		return t.deleteMatching(ctx, name, typ, chompDot(op.Data))
	}

	return fmt.Errorf("unknown action %d", op.Action)
}

func (t *Cloudflare) create(ctx context.Context, name, typ string, op zone.Op) error {
	_, err := t.api.CreateDNSRecord(ctx, t.rc, cloudflare.CreateDNSRecordParams{
		Type:    typ,
		Name:    name,
		Content: chompDot(op.Data),
		TTL:     int(op.TTL),
	})

	return err
}

// deleteMatching removes the records of (name, type) whose content matches, or all of
// them when content is empty. A name with no records is not an error; the delete
// contract is "make sure it's gone".
func (t *Cloudflare) deleteMatching(ctx context.Context, name, typ, content string) error {
	recs, _, err := t.api.ListDNSRecords(ctx, t.rc, cloudflare.ListDNSRecordsParams{
		Type: typ,
		Name: name,
	})
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if len(content) > 0 && chompDot(rec.Content) != content {
			continue
		}
		if err = t.api.DeleteDNSRecord(ctx, t.rc, rec.ID); err != nil {
			return err
		}
	}

	return nil
}

// Query implements the optional query capability from the API's view of the zone,
// which is as authoritative as it gets for a Cloudflare-hosted zone.
func (t *Cloudflare) Query(name string, rrtype uint16) ([]dns.RR, error) {
	name = dns.CanonicalName(name)
	typ := dnsutil.TypeToString(rrtype)
	recs, _, err := t.api.ListDNSRecords(context.Background(), t.rc,
		cloudflare.ListDNSRecordsParams{Type: typ, Name: chompDot(name)})
	if err != nil {
		return nil, err
	}

	rrs := make([]dns.RR, 0, len(recs))
	for _, rec := range recs {
		content := rec.Content
		if rrtype == dns.TypePTR { // PTR targets are domain names; restore the root dot
			content = dns.CanonicalName(content)
		}
		rr, err := dns.NewRR(fmt.Sprintf("%s %d IN %s %s", name, rec.TTL, typ, content))
		if err != nil {
			return nil, fmt.Errorf("cloudflare record for %s unparseable: %w", name, err)
		}
		rrs = append(rrs, rr)
	}

	return rrs, nil
}

// apiName converts a zone-relative op name to the FQDN-without-dot form the API wants.
func (t *Cloudflare) apiName(rel string) string {
	return chompDot(absoluteName(rel, t.zoneName))
}

func chompDot(s string) string {
	return strings.TrimSuffix(s, ".")
}
