package relay

import (
	"time"

	"github.com/vnykmshr/gorelay/pkg/metrics"
	"github.com/vnykmshr/gorelay/pkg/streaming/stream"
)

// Config holds configuration for a relay stage.
type Config struct {
	// Concurrent is the maximum number of transforms allowed to be
	// unsettled simultaneously. Values below 1 default to 1.
	Concurrent int

	// Buffer is the output buffer capacity. Values below 1 default to
	// stream.DefaultBufferSize.
	Buffer int

	// Name labels this relay in metrics. Defaults to "relay".
	Name string

	// Metrics enables Prometheus instrumentation when non-nil.
	Metrics *metrics.Registry
}

// DefaultConfig returns a default relay configuration.
func DefaultConfig() Config {
	return Config{
		Concurrent: 1,
		Buffer:     stream.DefaultBufferSize,
	}
}

func (c Config) withDefaults() Config {
	if c.Concurrent < 1 {
		c.Concurrent = 1
	}
	if c.Buffer < 1 {
		c.Buffer = stream.DefaultBufferSize
	}
	if c.Name == "" {
		c.Name = "relay"
	}
	return c
}

// instruments bundles the metric updates a relay performs so call sites
// stay free of nil checks.
type instruments struct {
	reg  *metrics.Registry
	name string
}

func (c Config) instruments() instruments {
	return instruments{reg: c.Metrics, name: c.Name}
}

func (i instruments) itemIn() {
	if i.reg == nil {
		return
	}
	i.reg.RelayItemsIn.WithLabelValues(i.name).Inc()
}

func (i instruments) itemOut() {
	if i.reg == nil {
		return
	}
	i.reg.RelayItemsOut.WithLabelValues(i.name).Inc()
}

func (i instruments) failed(kind string) {
	if i.reg == nil {
		return
	}
	i.reg.RelayErrors.WithLabelValues(i.name, kind).Inc()
}

func (i instruments) inFlight(delta float64) {
	if i.reg == nil {
		return
	}
	i.reg.RelayInFlight.WithLabelValues(i.name).Add(delta)
}

func (i instruments) queued(delta float64) {
	if i.reg == nil {
		return
	}
	i.reg.RelayQueuedSlots.WithLabelValues(i.name).Add(delta)
}

func (i instruments) observe(d time.Duration) {
	if i.reg == nil {
		return
	}
	i.reg.TransformDuration.WithLabelValues(i.name).Observe(d.Seconds())
}
