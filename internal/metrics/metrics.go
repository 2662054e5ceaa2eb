// Package metrics exposes Prometheus metrics for dashboard interactions and
// rendering.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InteractionKinds are the kind labels the dashboard counts in
// interactions_total.
var InteractionKinds = []string{
	"toggle", "hover", "clear", "details", "year", "zoom",
	"add_scatter", "remove_scatter",
	"x_field", "y_field", "scatter_year", "continent", "regression",
}

// Recorder holds the dashboard's metrics.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	interactions  *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec
	loadErrors    *prometheus.CounterVec
	selectionSize prometheus.Gauge
}

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets the render duration buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// WithRegistry registers the metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(r *Recorder) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// New creates a Recorder registered on its own registry.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "happydash",
		buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.interactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "interactions_total",
		Help:      "User interactions by kind (" + strings.Join(InteractionKinds, ", ") + ").",
	}, []string{"kind"})
	r.renderSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "render_duration_seconds",
		Help:      "Time spent building a view.",
		Buckets:   r.buckets,
	}, []string{"view"})
	r.loadErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "load_errors_total",
		Help:      "Failed loads by source (dataset, geography).",
	}, []string{"source"})
	r.selectionSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "selection_size",
		Help:      "Number of selected (country, year) entries.",
	})
	r.registry.MustRegister(r.interactions, r.renderSeconds, r.loadErrors, r.selectionSize)
	return r
}

// Registry returns the registry the metrics live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Interaction counts one applied interaction. A nil Recorder is a no-op,
// as are the other methods.
func (r *Recorder) Interaction(kind string) {
	if r == nil {
		return
	}
	r.interactions.WithLabelValues(kind).Inc()
}

// ObserveRender records how long building view took.
func (r *Recorder) ObserveRender(view string, d time.Duration) {
	if r == nil {
		return
	}
	r.renderSeconds.WithLabelValues(view).Observe(d.Seconds())
}

// LoadError counts a failed load.
func (r *Recorder) LoadError(source string) {
	if r == nil {
		return
	}
	r.loadErrors.WithLabelValues(source).Inc()
}

// SetSelectionSize publishes the current selection size.
func (r *Recorder) SetSelectionSize(n int) {
	if r == nil {
		return
	}
	r.selectionSize.Set(float64(n))
}
