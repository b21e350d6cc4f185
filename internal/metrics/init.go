package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"photo-bridge/internal/logging"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, status := range []string{"success", "error_decode", "error_resize"} {
		GenerationsTotal.WithLabelValues(status)
	}
	for _, status := range []string{"success", "error"} {
		MetadataWritesTotal.WithLabelValues(status)
	}
	QueueDepth.Set(0)
}

// Serve starts the Prometheus scrape endpoint on its own port. It blocks,
// so run it in a goroutine.
func Serve(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logging.Info("Metrics listening on :%s/metrics", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logging.Error("Metrics server error: %v", err)
	}
}
