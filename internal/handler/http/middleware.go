package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"magazine-catalog/internal/handler/http/pathutil"
	"magazine-catalog/internal/handler/http/requestid"
	"magazine-catalog/internal/handler/http/respond"
	"magazine-catalog/internal/handler/http/responsewriter"
	"magazine-catalog/pkg/security/csp"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Logging returns middleware that logs HTTP requests with structured logging.
// It records the normalized route alongside the raw path and attaches the trace ID
// from the OpenTelemetry span context so logs and traces can be correlated.
// 5xx responses are logged at error level, 4xx at warn level.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			span := trace.SpanFromContext(r.Context())
			duration := time.Since(start)
			status := wrapped.StatusCode()

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", pathutil.NormalizePath(r.URL.Path)),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", status),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that catches panics and logs them with structured logging.
// The client receives a generic 500 response.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					// http.ErrAbortHandler はそのまま再送出する
					if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
						panic(rec)
					}

					respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))

					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody returns middleware that caps request bodies at maxBytes.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders returns middleware that sets the CSP header built from policy
// and disables MIME sniffing. A nil policy or an empty build sets only nosniff.
func SecurityHeaders(policy *csp.CSPBuilder) func(http.Handler) http.Handler {
	var name, value string
	if policy != nil {
		name, value = policy.HeaderName(), policy.Build()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			if value != "" {
				w.Header().Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteLimiter throttles mutating requests (POST, PUT, PATCH, DELETE) per client IP
// using a token bucket. Read requests pass through untouched.
type WriteLimiter struct {
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	extractor IPExtractor

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewWriteLimiter creates a WriteLimiter allowing requestsPerSecond sustained
// writes per client with bursts of up to burst. Idle clients are forgotten after ttl.
// Clients are keyed by RemoteAddr unless WithIPExtractor installs another strategy.
func NewWriteLimiter(requestsPerSecond float64, burst int, ttl time.Duration) *WriteLimiter {
	return &WriteLimiter{
		rate:      rate.Limit(requestsPerSecond),
		burst:     burst,
		ttl:       ttl,
		now:       time.Now,
		extractor: RemoteAddrExtractor{},
		clients:   make(map[string]*clientLimiter),
	}
}

// WithIPExtractor sets how clients are identified. A nil extractor is ignored.
func (wl *WriteLimiter) WithIPExtractor(e IPExtractor) *WriteLimiter {
	if e != nil {
		wl.extractor = e
	}
	return wl
}

// Limit wraps next, returning 429 Too Many Requests when a client's bucket is empty.
func (wl *WriteLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isWriteMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		ip, err := wl.extractor.ExtractIP(r)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !wl.allow(ip) {
			rateLimitedTotal.WithLabelValues(pathutil.NormalizePath(r.URL.Path)).Inc()
			w.Header().Set("Retry-After", "1")
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Clients returns the number of tracked clients.
func (wl *WriteLimiter) Clients() int {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	return len(wl.clients)
}

// Cleanup forgets clients idle for longer than the limiter's ttl and
// returns how many were removed.
func (wl *WriteLimiter) Cleanup() int {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	cutoff := wl.now().Add(-wl.ttl)
	removed := 0
	for ip, c := range wl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(wl.clients, ip)
			removed++
		}
	}
	return removed
}

func (wl *WriteLimiter) allow(ip string) bool {
	wl.mu.Lock()
	c, ok := wl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(wl.rate, wl.burst)}
		wl.clients[ip] = c
	}
	now := wl.now()
	c.lastSeen = now
	wl.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
