package renderer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus instrumentation.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "blockdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for patch duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus instrumentation.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the patch-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

// Metrics holds the Prometheus metrics for one renderer.
type Metrics struct {
	patchesTotal  prometheus.Counter
	hostOpsTotal  *prometheus.CounterVec
	patchDuration prometheus.Histogram
}

// NewMetrics creates Prometheus instrumentation for a renderer. Pass the
// result to a Renderer via WithMetrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "blockdom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)
	return &Metrics{
		patchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Total number of top-level patch calls",
			ConstLabels: config.ConstLabels,
		}),
		hostOpsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_ops_total",
			Help:        "Host operations issued, by operation class",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
		patchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_duration_seconds",
			Help:        "Duration of top-level patch calls in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

// WithMetrics attaches Prometheus instrumentation to a Renderer.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// observe records one top-level patch. Nil-safe so the hot path carries no
// branches at call sites.
func (m *Metrics) observe(stats opStats, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.patchesTotal.Inc()
	m.hostOpsTotal.WithLabelValues("mount").Add(float64(stats.mounts))
	m.hostOpsTotal.WithLabelValues("patch").Add(float64(stats.patches))
	m.hostOpsTotal.WithLabelValues("move").Add(float64(stats.moves))
	m.hostOpsTotal.WithLabelValues("unmount").Add(float64(stats.unmounts))
	m.patchDuration.Observe(elapsed.Seconds())
}
