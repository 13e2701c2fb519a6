/*
Package resolver wraps the networking side of DNS queries behind a single interface so
the rest of the program - and in particular the tests - never talk to the wire
directly. The real implementation defers to github.com/miekg/dns for exchanges and to
net.Resolver for host lookups; the mock implementation in mock/resolver answers from
files.
*/
package resolver
