// This file exists so that "go doc github.com/ddnshook/ddnshook" displays something
// useful.

/*
Package ddnshook is a dynamic DNS webhook daemon. It listens for IP address change
notifications from an inventory system such as NetBox and converges forward (A/AAAA)
and reverse (PTR) records to the notified state by issuing the minimal set of record
additions and deletions to the authoritative server for each affected zone.

Zones are mapped to backends in a small YAML file. Backends are pluggable: RFC2136
TSIG-signed dynamic updates, the Cloudflare API, or a print-only dummy for dry runs.

Project site: https://github.com/ddnshook/ddnshook
*/
package ddnshook
