package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_bridge_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_bridge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Thumbnail engine metrics
var (
	MemoryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_bridge_memory_cache_hits_total",
			Help: "Total number of memory cache hits",
		},
	)

	MemoryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_bridge_memory_cache_misses_total",
			Help: "Total number of memory cache misses",
		},
	)

	DiskCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_bridge_disk_cache_hits_total",
			Help: "Total number of disk cache hits",
		},
	)

	DiskCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_bridge_disk_cache_misses_total",
			Help: "Total number of disk cache misses",
		},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_bridge_generations_total",
			Help: "Total number of thumbnail generations by outcome",
		},
		[]string{"status"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photo_bridge_generation_duration_seconds",
			Help:    "Thumbnail generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_bridge_queue_depth",
			Help: "Number of requests waiting in the generation queue",
		},
	)

	RequestsSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_bridge_requests_superseded_total",
			Help: "Total number of queued requests replaced by a newer request for the same key",
		},
	)

	RequestsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_bridge_requests_dropped_total",
			Help: "Total number of requests dropped because a higher-priority request was already queued",
		},
	)
)

// Metadata store metrics
var (
	MetadataWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_bridge_metadata_writes_total",
			Help: "Total number of metadata store writes",
		},
		[]string{"status"},
	)
)
