package handlers

import (
	"context"
	"net/http"
	"time"

	"storefront_api/pkg/dbconnect"
	"storefront_api/pkg/logger"
)

type HealthHandler struct {
	store dbconnect.HealthChecker
	log   logger.Logger
}

// NewHealthHandler accepts a nil store for backends without a connection to check.
func NewHealthHandler(store dbconnect.HealthChecker, log logger.Logger) *HealthHandler {
	return &HealthHandler{store: store, log: log}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			h.log.Warn("health check failed: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
