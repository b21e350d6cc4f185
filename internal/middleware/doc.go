// Package middleware provides HTTP middleware for the preview service:
// request logging with status/byte capture and Prometheus instrumentation.
package middleware
