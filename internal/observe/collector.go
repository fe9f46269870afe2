package observe

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Collector records metrics into an in-process reader so they can be
// reported after a run.
type Collector struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
	metrics  *Metrics
}

// Totals are the summed values of all instruments.
type Totals struct {
	Queries       int64   `json:"queries"`
	CacheHits     int64   `json:"cache_hits"`
	CacheMisses   int64   `json:"cache_misses"`
	Updates       int64   `json:"updates"`
	NodesVisited  int64   `json:"nodes_visited"`
	UpdateSeconds float64 `json:"update_seconds"`
}

// NewCollector creates a collector with its own meter provider.
func NewCollector() (*Collector, error) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp)
	if err != nil {
		_ = mp.Shutdown(context.Background())
		return nil, err
	}
	return &Collector{reader: reader, provider: mp, metrics: m}, nil
}

// Metrics returns the instruments recording into this collector.
func (c *Collector) Metrics() *Metrics { return c.metrics }

// Totals collects the current values.
func (c *Collector) Totals(ctx context.Context) (Totals, error) {
	var rm metricdata.ResourceMetrics
	if err := c.reader.Collect(ctx, &rm); err != nil {
		return Totals{}, err
	}

	var t Totals
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case NameVisibilityQueries:
				sum, _ := m.Data.(metricdata.Sum[int64])
				for _, dp := range sum.DataPoints {
					t.Queries += dp.Value
					if v, ok := dp.Attributes.Value("cache"); ok && v.AsString() == "hit" {
						t.CacheHits += dp.Value
					} else {
						t.CacheMisses += dp.Value
					}
				}
			case NameSceneUpdates:
				t.Updates += sumInt(m.Data)
			case NameNodesVisited:
				t.NodesVisited += sumInt(m.Data)
			case NameUpdateDuration:
				hist, _ := m.Data.(metricdata.Histogram[float64])
				for _, dp := range hist.DataPoints {
					t.UpdateSeconds += dp.Sum
				}
			}
		}
	}
	return t, nil
}

// Shutdown releases the meter provider.
func (c *Collector) Shutdown(ctx context.Context) error {
	return c.provider.Shutdown(ctx)
}

func sumInt(data metricdata.Aggregation) int64 {
	sum, _ := data.(metricdata.Sum[int64])
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}
