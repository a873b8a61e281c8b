// Package monitoring provides Prometheus metrics for the console service.
//
// Metrics cover the line discipline (bytes received, lines committed, bytes
// dropped on buffer overflow, cancelled reads), session lifecycle, and
// WebSocket connections. All metrics are registered via promauto and exposed
// through the /metrics endpoint.
package monitoring
