// Package http provides the HTTP surface of the catalog: shared middleware,
// health and metrics endpoints, and the resource handlers registered by the
// author, magazine and article subpackages.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"magazine-catalog/internal/usecase/catalog"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// StatsProvider reports catalog size. *catalog.Service satisfies it.
type StatsProvider interface {
	Stats(ctx context.Context) (catalog.Stats, error)
}

// HealthHandler reports overall service health, including catalog counts
// and, when configured, the write limiter's tracked client count.
type HealthHandler struct {
	Catalog StatsProvider
	Limiter *WriteLimiter
	Version string
}

// ServeHTTP returns 200 OK when every check passes, or 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	catalogCheck := h.checkCatalog(ctx)
	checks["catalog"] = catalogCheck
	if catalogCheck.Status != "healthy" {
		allHealthy = false
	}

	// レート制限は情報のみ
	if h.Limiter != nil {
		checks["write_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"active_clients": h.Limiter.Clients()},
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) checkCatalog(ctx context.Context) CheckStatus {
	if h.Catalog == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	st, err := h.Catalog.Stats(ctx)
	if err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}
	return CheckStatus{
		Status: "healthy",
		Details: map[string]any{
			"authors":   st.Authors,
			"magazines": st.Magazines,
			"articles":  st.Articles,
		},
	}
}

// ReadyHandler handles readiness probe requests.
// It reports ready once Ready has been set, which cmd/api does after the seed
// catalog has been applied.
type ReadyHandler struct {
	Ready *atomic.Bool
}

// ServeHTTP returns 200 OK when ready, or 503 Service Unavailable.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Ready == nil || !h.Ready.Load() {
		http.Error(w, "catalog not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Warn("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Warn("alive: failed to write response", slog.Any("error", err))
	}
}
