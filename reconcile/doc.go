/*
Package reconcile computes the record operations needed to converge forward (A/AAAA)
and reverse (PTR) DNS records to the desired state of one address-to-hostname binding,
then commits them per zone via a zone.Batch.

Three entry points cover the three shapes of change event. Snapshot trusts a
before/after pair supplied by the event source and performs no DNS reads. Sync only
knows the desired state and queries live records to work out the deltas, which lets it
clean up drift which accumulated outside the event stream. DeleteBinding handles
explicit removals.

A Reconciler is stateless between calls and holds no locks; concurrent calls are safe
because the registry is read-only and every call owns its own batch.
*/
package reconcile
