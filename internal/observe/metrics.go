// Package observe provides the OpenTelemetry metric instruments recorded by
// the filter system.
//
// A package-level default [Metrics] instance ([DefaultMetrics]) records to
// the global meter provider, which is a no-op unless one is installed.
// Callers that want to read the values back use a [Collector].
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/ivoronin/scenefilter"

// Metric names.
const (
	NameVisibilityQueries = "scenefilter.visibility.queries"
	NameSceneUpdates      = "scenefilter.scene.updates"
	NameNodesVisited      = "scenefilter.scene.nodes_visited"
	NameUpdateDuration    = "scenefilter.scene.update.duration"
)

// Metrics holds the metric instruments.
type Metrics struct {
	// VisibilityQueries counts IsVisible lookups. Use with attribute:
	//   attribute.String("cache", "hit"|"miss")
	VisibilityQueries metric.Int64Counter

	// SceneUpdates counts scene graph update passes.
	SceneUpdates metric.Int64Counter

	// NodesVisited counts nodes evaluated by update passes.
	NodesVisited metric.Int64Counter

	// UpdateDuration tracks the time spent in one update pass.
	UpdateDuration metric.Float64Histogram
}

// durationBuckets (seconds) suit scene walks from tiny test maps to large
// levels.
var durationBuckets = []float64{
	0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.VisibilityQueries, err = m.Int64Counter(NameVisibilityQueries,
		metric.WithDescription("Visibility lookups by cache outcome."),
	); err != nil {
		return nil, err
	}
	if met.SceneUpdates, err = m.Int64Counter(NameSceneUpdates,
		metric.WithDescription("Scene graph update passes."),
	); err != nil {
		return nil, err
	}
	if met.NodesVisited, err = m.Int64Counter(NameNodesVisited,
		metric.WithDescription("Scene nodes evaluated by update passes."),
	); err != nil {
		return nil, err
	}
	if met.UpdateDuration, err = m.Float64Histogram(NameUpdateDuration,
		metric.WithDescription("Duration of one scene update pass."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider].
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordQuery records one visibility lookup.
func (m *Metrics) RecordQuery(ctx context.Context, cacheHit bool) {
	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}
	m.VisibilityQueries.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", outcome)))
}

// RecordUpdate records one update pass over visited nodes.
func (m *Metrics) RecordUpdate(ctx context.Context, visited int, elapsed time.Duration) {
	m.SceneUpdates.Add(ctx, 1)
	m.NodesVisited.Add(ctx, int64(visited))
	m.UpdateDuration.Record(ctx, elapsed.Seconds())
}
