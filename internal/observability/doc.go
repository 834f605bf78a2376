// Package observability provides the logging, metrics and tracing infrastructure
// shared by the API server and the command-line tools.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus business metrics for the catalog
//   - tracing: OpenTelemetry tracing integration
//   - slo: Availability, error rate and latency indicators for the HTTP API
//
// Example usage:
//
//	import (
//	    "magazine-catalog/internal/observability/logging"
//	    "magazine-catalog/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.UpdateCatalogTotals(0, 0, 0)
//	}
package observability
