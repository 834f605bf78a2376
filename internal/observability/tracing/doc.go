// Package tracing provides OpenTelemetry tracing integration.
//
// It installs an SDK tracer provider for the process, wraps HTTP handlers in
// server spans, and offers StartSpan for use-case level spans.
//
// Example usage:
//
//	import "magazine-catalog/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.InitProvider(1.0)
//	    defer shutdown(context.Background())
//	}
//
//	func publish(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "catalog.Publish")
//	    defer span.End()
//	    // ...
//	}
package tracing
