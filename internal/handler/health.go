package handler

import (
	"context"
	"net/http"
	"time"
)

// NATSChecker reports message-bus connectivity.
type NATSChecker interface {
	IsConnected() bool
}

// DBChecker reports database connectivity.
type DBChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	nats    NATSChecker
	db      DBChecker
	started time.Time
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(nats NATSChecker, db DBChecker, version string) *HealthHandler {
	return &HealthHandler{
		nats:    nats,
		db:      db,
		started: time.Now(),
		version: version,
	}
}

// Health handles GET /health. Liveness only.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	})
}

// Ready handles GET /ready. Fails when a dependency is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	if h.nats != nil {
		if h.nats.IsConnected() {
			checks["nats"] = "ok"
		} else {
			checks["nats"] = "disconnected"
			healthy = false
		}
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			checks["postgres"] = "unreachable"
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
	})
}
