/*
Package relay provides bounded-concurrency stream transforms that preserve
input order on output.

A relay reads items from an upstream stream, runs a user transform over each
with up to Concurrent transforms in flight, and releases results downstream
in strict input-arrival order: transform N's outputs are not released until
transforms 1..N-1 have released theirs, even if N finishes first. This is
what distinguishes a relay from a naive unordered concurrent map.

Operations:

	// One output per input
	out := relay.Map(ctx, in, relay.Config{Concurrent: 4}, fetch)

	// Keep items matching an asynchronous predicate
	out := relay.Filter(ctx, in, relay.Config{Concurrent: 4}, isValid)

	// Fold into a single value (always sequential)
	sum := relay.Reduce(ctx, in, relay.Config{}, 0, add)

	// Full control: emit zero, one, or many outputs per input
	out := relay.Through(ctx, in, cfg, transform, onEnd)

Every relay is itself a stream, so stages chain directly. A relay also
carries a promise settling at its terminal state:

	if err := out.Promise().Await(ctx); ...

Error Policy:

The first error wins, whether it comes from a transform, an upstream error
event, or the end hook. After a failure the relay stops admitting new work,
lets in-flight transforms settle, discards their outputs, and forwards a
single error event downstream. Nothing is retried; retry policy belongs to
the caller's transform function.

Backpressure:

When the downstream consumer stops reading, the relay's commit loop stalls,
its bounded slot queue fills, and no new transforms start. Transforms
already in flight still settle and queue their results. There is no
watchdog: a transform that never returns permanently occupies a concurrency
slot.
*/
package relay
