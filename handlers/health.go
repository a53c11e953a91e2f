package handlers

import (
	"net/http"
	"time"

	"github.com/upb/ai-proxy/models"
	"github.com/upb/ai-proxy/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// StatusResponse describes the running service
type StatusResponse struct {
	Version     string                      `json:"version"`
	Environment string                      `json:"environment"`
	Providers   []string                    `json:"providers"`
	Dispatches  map[string]map[string]int64 `json:"dispatches"`
}

// ProviderLister reports the providers a dispatcher can serve
type ProviderLister interface {
	Providers() []models.ProviderKind
}

// MetricsSnapshotter exposes dispatch counters
type MetricsSnapshotter interface {
	Snapshot() map[string]map[string]int64
}

// HealthHandler handles health and status requests
type HealthHandler struct {
	version     string
	environment string
	providers   ProviderLister
	metrics     MetricsSnapshotter
	logger      *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(version, environment string, providers ProviderLister, metrics MetricsSnapshotter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		version:     version,
		environment: environment,
		providers:   providers,
		metrics:     metrics,
		logger:      logger,
	}
}

// HandleHealth handles GET /healthz
// Basic health check - always returns 200 if service is running
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = utils.WriteOK(w, response)
}

// HandleStatus handles GET /api/v1/status
func (h *HealthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	kinds := h.providers.Providers()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}

	response := StatusResponse{
		Version:     h.version,
		Environment: h.environment,
		Providers:   names,
		Dispatches:  map[string]map[string]int64{},
	}
	if h.metrics != nil {
		response.Dispatches = h.metrics.Snapshot()
	}

	if err := utils.WriteOK(w, response); err != nil {
		h.logger.Error("failed to write status response", zap.Error(err))
	}
}
