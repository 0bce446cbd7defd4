package geoidx

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for index build and query
// instrumentation. A nil *Metrics disables instrumentation entirely: every
// method on it is safe to call on a nil receiver and becomes a no-op, so
// callers that don't care about observability never pay for it.
type Metrics struct {
	buildDuration *prometheus.HistogramVec
	queryDuration *prometheus.HistogramVec
	indexSize     *prometheus.GaugeVec
}

// NewMetrics registers geoidx's collectors against reg and returns a
// *Metrics ready to pass to the façade's build drivers. Passing a fresh
// prometheus.NewRegistry() keeps geoidx's metrics out of the default
// global registry, which matters for tests and for embedding geoidx in a
// larger service with its own metrics namespace.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "geoidx",
			Name:      "build_duration_seconds",
			Help:      "Time spent building an index, by index kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "geoidx",
			Name:      "query_duration_seconds",
			Help:      "Time spent on a single k-NN query, by index kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		indexSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "geoidx",
			Name:      "index_size",
			Help:      "Leaf count (Quadtree/ZGrid) or load (RTree) after the last build, by index kind.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) observeBuild(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) observeQuery(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) observeSize(kind string, size float64) {
	if m == nil {
		return
	}
	m.indexSize.WithLabelValues(kind).Set(size)
}
