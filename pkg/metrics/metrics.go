// Package metrics provides Prometheus instrumentation for gorelay components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gorelay components.
type Registry struct {
	// Relay Metrics
	RelayItemsIn      *prometheus.CounterVec
	RelayItemsOut     *prometheus.CounterVec
	RelayErrors       *prometheus.CounterVec
	RelayInFlight     *prometheus.GaugeVec
	RelayQueuedSlots  *prometheus.GaugeVec
	TransformDuration *prometheus.HistogramVec

	// Bridge Metrics
	BridgeResolved *prometheus.CounterVec
	BridgeRejected *prometheus.CounterVec

	// Pipeline Metrics
	PipelineStages *prometheus.GaugeVec
	PipelineRuns   *prometheus.CounterVec

	// Source/Sink Metrics
	SourceEvents *prometheus.CounterVec
	SinkWrites   *prometheus.CounterVec
	SinkErrors   *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by gorelay components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Relay Metrics
		RelayItemsIn: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorelay",
				Subsystem: "relay",
				Name:      "items_in_total",
				Help:      "Total number of items accepted by relays",
			},
			[]string{"relay_name"},
		),

		RelayItemsOut: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorelay",
				Subsystem: "relay",
				Name:      "items_out_total",
				Help:      "Total number of items released downstream by relays",
			},
			[]string{"relay_name"},
		),

		RelayErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorelay",
				Subsystem: "relay",
				Name:      "errors_total",
				Help:      "Total number of relay failures by error kind",
			},
			[]string{"relay_name", "kind"},
		),

		RelayInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gorelay",
				Subsystem: "relay",
				Name:      "in_flight",
				Help:      "Number of transforms currently in flight",
			},
			[]string{"relay_name"},
		),

		RelayQueuedSlots: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gorelay",
				Subsystem: "relay",
				Name:      "queued_slots",
				Help:      "Number of completed transforms waiting for ordered release",
			},
			[]string{"relay_name"},
		),

		TransformDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gorelay",
				Subsystem: "relay",
				Name:      "transform_duration_seconds",
				Help:      "Time spent executing transform callbacks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"relay_name"},
		),

		// Bridge Metrics
		BridgeResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorelay",
				Subsystem: "bridge",
				Name:      "resolved_total",
				Help:      "Total number of bridge promises resolved",
			},
			[]string{"operation"},
		),

		BridgeRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorelay",
				Subsystem: "bridge",
				Name:      "rejected_total",
				Help:      "Total number of bridge promises rejected",
			},
			[]string{"operation"},
		),

		// Pipeline Metrics
		PipelineStages: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gorelay",
				Subsystem: "pipeline",
				Name:      "stages",
				Help:      "Number of stages in active pipelines",
			},
			[]string{"pipeline_name"},
		),

		PipelineRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorelay",
				Subsystem: "pipeline",
				Name:      "runs_total",
				Help:      "Total number of pipeline executions by outcome",
			},
			[]string{"pipeline_name", "outcome"},
		),

		// Source/Sink Metrics
		SourceEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorelay",
				Subsystem: "source",
				Name:      "events_total",
				Help:      "Total number of events emitted by sources",
			},
			[]string{"source_type", "event"},
		),

		SinkWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorelay",
				Subsystem: "sink",
				Name:      "writes_total",
				Help:      "Total number of items written to sinks",
			},
			[]string{"sink_type"},
		),

		SinkErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorelay",
				Subsystem: "sink",
				Name:      "errors_total",
				Help:      "Total number of sink write failures",
			},
			[]string{"sink_type"},
		),
	}
}
