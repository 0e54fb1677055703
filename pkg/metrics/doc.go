/*
Package metrics provides Prometheus instrumentation for gorelay components.

All metrics live under the "gorelay" namespace and are grouped by subsystem:
relay (item counters, in-flight gauge, transform duration histogram), bridge
(promise settlement counters), pipeline (stage gauge, run counters), and
source/sink (event and write counters).

Components accept an optional *Registry through their Config. A nil registry
disables instrumentation entirely; there is no runtime toggling.

Example usage:

	reg := prometheus.NewRegistry()
	registry := metrics.NewRegistry(reg)

	out := relay.Map(ctx, in, relay.Config{
		Name:       "resize",
		Concurrent: 4,
		Metrics:    registry,
	}, resize)

Use a dedicated prometheus.Registry per test to avoid duplicate registration
panics from promauto.
*/
package metrics
