package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upb/ai-proxy/middleware"
	"github.com/upb/ai-proxy/models"
	"github.com/upb/ai-proxy/services"
	"github.com/upb/ai-proxy/services/dispatch"
	"github.com/upb/ai-proxy/utils"
	"go.uber.org/zap"
)

// maxRequestBodyBytes bounds the JSON body of a proxy request
const maxRequestBodyBytes = 1 << 20

// Dispatcher sends one prompt to a provider and returns the envelope
type Dispatcher interface {
	Dispatch(ctx context.Context, req *models.AIProxyRequest) (*models.AIProxyResponse, error)
}

// AIProxyHandler serves the provider proxy endpoint
type AIProxyHandler struct {
	dispatcher Dispatcher
	defaults   dispatch.Defaults
	logger     *zap.Logger
}

// NewAIProxyHandler creates a new AIProxyHandler
func NewAIProxyHandler(dispatcher Dispatcher, defaults dispatch.Defaults, logger *zap.Logger) *AIProxyHandler {
	return &AIProxyHandler{
		dispatcher: dispatcher,
		defaults:   defaults,
		logger:     logger,
	}
}

// HandleProxy handles POST /api/ai-proxy.
// Provider failures are reported with 200 and success=false; only malformed
// input and proxy misconfiguration produce 4xx.
func (h *AIProxyHandler) HandleProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req models.AIProxyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleServiceError(w, services.NewDomainError(services.ErrorTypeValidation, "Invalid JSON in request body", err), h.logger)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warn("request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleValidationError(w, err, h.logger)
		return
	}

	resolved := h.defaults.Apply(&req)

	resp, err := h.dispatcher.Dispatch(ctx, resolved)
	if err != nil {
		HandleServiceError(w, services.ClassifyDispatchError(err), h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("failed to write proxy response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}
