package observability

import (
	"context"

	"github.com/upb/ai-proxy/services/dispatch"
	"github.com/upb/ai-proxy/services/proxy"
	"go.uber.org/zap"
)

// NewDispatchHooks logs every dispatch stage and, when metrics is non-nil,
// counts outcomes per provider
func NewDispatchHooks(logger Logger, metrics Metrics) dispatch.Hooks {
	record := func(ctx context.Context, provider, status string) {
		if metrics != nil {
			metrics.RecordDispatch(ctx, RequestLabels{Provider: provider, Status: status})
		}
	}

	return dispatch.Hooks{
		Proxy: proxy.Hooks{
			OnConfigured: func(proxyURL string) {
				logger.Info(context.Background(), "using proxy", zap.String("proxy", proxyURL))
			},
			OnError: func(_ string, err error) {
				logger.Error(context.Background(), "failed to set proxy", zap.Error(err))
			},
		},
		OnRejected: func(ctx context.Context, provider string, err error) {
			logger.Warn(ctx, "dispatch rejected before provider call",
				zap.String("provider", provider),
				zap.Error(err))
			record(ctx, provider, StatusConfigError)
		},
		OnReceived: func(ctx context.Context, provider string) {
			logger.Info(ctx, "received AI proxy request", zap.String("provider", provider))
		},
		OnSend: func(ctx context.Context, provider, url string) {
			logger.Debug(ctx, "sending provider request",
				zap.String("provider", provider),
				zap.String("url", url))
		},
		OnSuccess: func(ctx context.Context, provider string, contentLength int) {
			logger.Info(ctx, "provider request succeeded",
				zap.String("provider", provider),
				zap.Int("content_length", contentLength))
			record(ctx, provider, StatusSuccess)
		},
		OnFailure: func(ctx context.Context, provider, message string) {
			logger.Error(ctx, "provider request failed",
				zap.String("provider", provider),
				zap.String("error", message))
			record(ctx, provider, StatusFailure)
		},
	}
}
