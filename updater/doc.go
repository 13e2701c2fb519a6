/*
Package updater contains the zone backends: the things which take a committed batch of
record operations for one zone and make them real.

NSUpdate speaks RFC2136 dynamic update with TSIG to an authoritative primary and is the
backend the program exists for. Cloudflare drives the same operations thru the
Cloudflare API for zones hosted there. Dummy just prints what it would have done and is
handy for dry runs.

NSUpdate and Cloudflare also expose the optional query capability so the reconciler can
read current records straight from the authoritative source instead of trusting a
recursive resolver's cache.
*/
package updater
