package api

import (
	"context"
	"net/http"
	"time"

	"github.com/marmalade-labs/banter/internal/log"
)

// readyCheckTimeout bounds the database probe behind /ready.
const readyCheckTimeout = 5 * time.Second

// healthHandler serves the liveness and readiness probes.
type healthHandler struct {
	ready  ReadyFunc
	logger log.Logger
}

func newHealthHandler(ready ReadyFunc, logger log.Logger) *healthHandler {
	return &healthHandler{ready: ready, logger: logger}
}

func (h *healthHandler) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /ready", h.handleReady)
}

// handleHealth reports liveness: the process is up and serving.
func (h *healthHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports readiness: dependencies are reachable.
func (h *healthHandler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			writeJSON(w, h.logger, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": err.Error(),
			})
			return
		}
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ready"})
}
