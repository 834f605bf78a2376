// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the business metrics of the catalog:
//   - Catalog size gauges (authors, magazines, articles)
//   - Creation counters per entity and per magazine category
//   - Validation failure counters per entity and error kind
//
// HTTP request metrics live next to the HTTP middleware in internal/handler/http.
// All metrics are registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "magazine-catalog/internal/observability/metrics"
//
//	func publish(m *entity.Magazine) {
//	    metrics.RecordArticlePublished(m.Category())
//	}
package metrics
