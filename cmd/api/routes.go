package main

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	hhttp "magazine-catalog/internal/handler/http"
	harticle "magazine-catalog/internal/handler/http/article"
	hauth "magazine-catalog/internal/handler/http/auth"
	hauthor "magazine-catalog/internal/handler/http/author"
	hmagazine "magazine-catalog/internal/handler/http/magazine"
	"magazine-catalog/internal/handler/http/requestid"
	"magazine-catalog/internal/observability/slo"
	"magazine-catalog/internal/observability/tracing"
	"magazine-catalog/internal/usecase/catalog"
	"magazine-catalog/pkg/security/csp"
)

// serverDeps holds everything the HTTP handler tree is built from.
type serverDeps struct {
	Logger       *slog.Logger
	Catalog      *catalog.Service
	Auth         *hauth.Authenticator
	Limiter      *hhttp.WriteLimiter
	SLO          *slo.Tracker
	Ready        *atomic.Bool
	Version      string
	MaxBodyBytes int64
}

// setupRoutes registers all HTTP routes. Mutating catalog routes are wrapped
// with the write limiter and the JWT writer check.
func setupRoutes(d serverDeps) *http.ServeMux {
	guard := func(h http.Handler) http.Handler {
		return d.Limiter.Limit(d.Auth.RequireWriter(h))
	}

	mux := http.NewServeMux()

	// ヘルスチェック・メトリクス（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{Catalog: d.Catalog, Limiter: d.Limiter, Version: d.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Ready: d.Ready})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hauthor.Register(mux, d.Catalog, guard)
	hmagazine.Register(mux, d.Catalog, guard)
	harticle.Register(mux, d.Catalog, guard)
	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Recovery → Logging → Security Headers → Body Limit → Tracing → Metrics → SLO
func applyMiddleware(d serverDeps, handler http.Handler) http.Handler {
	chain := handler

	// 内側から外側へ
	chain = d.SLO.Middleware(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.LimitRequestBody(d.MaxBodyBytes)(chain)
	chain = hhttp.SecurityHeaders(csp.StrictPolicy())(chain)
	chain = hhttp.Logging(d.Logger)(chain)
	chain = hhttp.Recover(d.Logger)(chain)
	chain = requestid.Middleware(chain)

	return chain
}
