package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the community detection engine
type Registry struct {
	// Detection metrics
	DetectionsTotal   *prometheus.CounterVec
	DetectionDuration prometheus.Histogram
	MergesTotal       prometheus.Counter
	CommunitiesFound  prometheus.Histogram
	BestDeltaQ        prometheus.Gauge
	FinalModularity   prometheus.Gauge

	// Input metrics
	GraphVertices prometheus.Histogram
	GraphEdges    prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{registry: reg}

	r.DetectionsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_detections_total",
			Help: "Total number of detection runs by outcome",
		},
		[]string{"status"},
	)

	r.DetectionDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "community_detection_duration_seconds",
			Help:    "Detection run duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
	)

	r.MergesTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "community_merges_total",
			Help: "Total number of community merges performed",
		},
	)

	r.CommunitiesFound = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "community_partitions_size",
			Help:    "Number of communities in completed partitions",
			Buckets: []float64{1, 2, 5, 10, 50, 100, 1000, 10000},
		},
	)

	r.BestDeltaQ = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "community_best_delta_q",
			Help: "Best modularity gain at the top of the global heap, as of the last progress report",
		},
	)

	r.FinalModularity = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "community_final_modularity",
			Help: "Modularity of the most recently completed partition",
		},
	)

	r.GraphVertices = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "community_graph_vertices",
			Help:    "Vertex counts of processed graphs",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		},
	)

	r.GraphEdges = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "community_graph_edges",
			Help:    "Edge counts of processed graphs",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		},
	)

	return r
}

// RecordDetection records one detection run with its outcome
func (r *Registry) RecordDetection(status string, duration time.Duration, merges, communities int) {
	r.DetectionsTotal.WithLabelValues(status).Inc()
	r.DetectionDuration.Observe(duration.Seconds())
	r.MergesTotal.Add(float64(merges))
	if status == "success" {
		r.CommunitiesFound.Observe(float64(communities))
	}
}

// RecordGraph records the size of an input graph
func (r *Registry) RecordGraph(vertices, edges int) {
	r.GraphVertices.Observe(float64(vertices))
	r.GraphEdges.Observe(float64(edges))
}

// SetBestDeltaQ publishes the modularity gain currently at the top of the
// global heap
func (r *Registry) SetBestDeltaQ(q float64) {
	r.BestDeltaQ.Set(q)
}

// SetModularity publishes the modularity of the latest partition
func (r *Registry) SetModularity(q float64) {
	r.FinalModularity.Set(q)
}

// Handler returns an HTTP handler exposing the registry in Prometheus format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
