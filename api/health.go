package api

import (
	"net/http"
	"time"

	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/config"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/errors"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/logger"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/service"
)

var startTime = time.Now()

// HealthResponse provides detailed health information. The endpoint itself
// never fails on a store outage; an unreachable backend is reported through
// store_healthy instead.
type HealthResponse struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	Uptime          string `json:"uptime"`
	Version         string `json:"version,omitempty"`
	StoreBackend    string `json:"store_backend"`
	StoreConfigured bool   `json:"store_configured"`
	StoreHealthy    bool   `json:"store_healthy"`
}

// NewHealthHandler returns a health check handler
func NewHealthHandler(cfg *config.Config, svc service.TaskService, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondWithError(w, errors.NewValidationError("method not allowed"), lg)
			return
		}

		response := HealthResponse{
			Status:          "healthy",
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
			Uptime:          time.Since(startTime).String(),
			Version:         cfg.Version,
			StoreBackend:    svc.Backend(),
			StoreConfigured: cfg.MongoConfigured(),
			StoreHealthy:    svc.Healthy(r.Context()),
		}

		respondJSON(w, http.StatusOK, response, lg)
	}
}
