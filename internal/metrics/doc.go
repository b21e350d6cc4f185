// Package metrics defines the Prometheus instrumentation for the thumbnail
// engine and the preview service: cache hit/miss counters for both tiers,
// generation outcomes and durations, queue depth, and request coalescing
// counters. Metrics are exposed on a dedicated port via Serve.
package metrics
