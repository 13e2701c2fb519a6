/*
Package zone holds the zone registry and the update batch.

The registry is the immutable mapping from authoritative zone names to their backends,
constructed once at startup. Resolve walks a name up through its parents until it hits a
registered zone, so the most specific registered suffix always wins.

A batch accumulates pending record operations grouped by zone and is committed exactly
once. Operations whose target name resolves to no registered zone are silently dropped;
such names are simply not this instance's responsibility.
*/
package zone
