// Package metrics exposes the Prometheus metrics for the HTTP surface and
// the fingerprinting pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	PeaksExtracted   prometheus.Histogram
	HashesGenerated  prometheus.Histogram
	QueryBestCount   prometheus.Histogram
	IndexHashCount   prometheus.Gauge
	IndexTrackCount  prometheus.Gauge
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics. Safe to call
// more than once; only the first call registers collectors.
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "shazam_http_requests_total",
					Help: "Total HTTP requests by path and status.",
				},
				[]string{"path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "shazam_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds.",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"path"},
			),
			PeaksExtracted: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "shazam_peaks_extracted",
				Help:    "Number of constellation peaks extracted per request.",
				Buckets: prometheus.ExponentialBuckets(10, 2, 10),
			}),
			HashesGenerated: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "shazam_hashes_generated",
				Help:    "Number of combinatorial hashes generated per request.",
				Buckets: prometheus.ExponentialBuckets(10, 2, 12),
			}),
			QueryBestCount: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "shazam_query_best_count",
				Help:    "Best offset-histogram count of the top match per query.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			}),
			IndexHashCount: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "shazam_index_hash_count",
				Help: "Distinct hash tokens currently held in the loaded index.",
			}),
			IndexTrackCount: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "shazam_index_track_count",
				Help: "Tracks currently registered in the loaded index.",
			}),
		}
	})
	return instance
}

// Get returns the process-wide metrics instance, initializing it if needed.
func Get() *Metrics {
	if instance == nil {
		return Initialize()
	}
	return instance
}
