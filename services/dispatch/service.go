// Package dispatch routes one prompt to the selected provider and normalizes
// every outcome into a result envelope.
package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/upb/ai-proxy/models"
	"github.com/upb/ai-proxy/services/providers"
	"github.com/upb/ai-proxy/services/providers/chatgpt"
	"github.com/upb/ai-proxy/services/providers/gemini"
	"github.com/upb/ai-proxy/services/providers/qwen"
	"github.com/upb/ai-proxy/services/proxy"
)

// Hooks observe a dispatch. They never influence the outcome; nil funcs are skipped.
type Hooks struct {
	Proxy      proxy.Hooks
	OnReceived func(ctx context.Context, provider string)
	OnRejected func(ctx context.Context, provider string, err error)
	OnSend     func(ctx context.Context, provider, url string)
	OnSuccess  func(ctx context.Context, provider string, contentLength int)
	OnFailure  func(ctx context.Context, provider, message string)
}

// Config holds dispatcher settings
type Config struct {
	// RequestTimeout bounds each per-dispatch HTTP client; zero keeps the transport defaults
	RequestTimeout time.Duration
}

// Service is the provider adapter dispatcher. It holds no per-call state.
type Service struct {
	registry *providers.Registry
	resolver *proxy.Resolver
	config   Config
	hooks    Hooks
}

// NewService creates a dispatcher over registry
func NewService(registry *providers.Registry, config Config, hooks Hooks) *Service {
	return &Service{
		registry: registry,
		resolver: proxy.NewResolver(hooks.Proxy),
		config:   config,
		hooks:    hooks,
	}
}

// NewDefaultRegistry registers a strategy for every supported provider.
// endpoints may override a provider's base URL.
func NewDefaultRegistry(endpoints map[models.ProviderKind]providers.ProviderConfig) (*providers.Registry, error) {
	registry, err := providers.NewRegistry(
		qwen.NewQwenAdapter(endpoints[models.ProviderQwen]),
		gemini.NewGeminiAdapter(endpoints[models.ProviderGemini]),
		chatgpt.NewChatGPTAdapter(endpoints[models.ProviderChatGPT]),
	)
	if err != nil {
		return nil, err
	}
	if missing := registry.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("no strategy for providers %v", missing)
	}
	return registry, nil
}

// Providers returns the providers this dispatcher can serve
func (s *Service) Providers() []models.ProviderKind {
	return s.registry.Kinds()
}

// Dispatch executes req against its provider.
// The returned error is non-nil only for pre-flight configuration failures
// (malformed proxy, client construction); every provider-side failure is
// reported inside the envelope.
func (s *Service) Dispatch(ctx context.Context, req *models.AIProxyRequest) (*models.AIProxyResponse, error) {
	if s.hooks.OnReceived != nil {
		s.hooks.OnReceived(ctx, req.Provider)
	}

	proxyURL, err := s.resolver.Resolve(req.ProxyURL)
	if err != nil {
		s.reject(ctx, req, err)
		return nil, err
	}

	client, err := proxy.NewHTTPClient(proxyURL, s.config.RequestTimeout)
	if err != nil {
		s.reject(ctx, req, err)
		return nil, err
	}
	// The client lives for this dispatch only; release its pooled connections.
	defer client.CloseIdleConnections()

	content, err := s.invoke(ctx, client, req)
	if err != nil {
		msg := err.Error()
		if s.hooks.OnFailure != nil {
			s.hooks.OnFailure(ctx, req.Provider, msg)
		}
		return models.NewErrorResponse(msg), nil
	}

	if s.hooks.OnSuccess != nil {
		s.hooks.OnSuccess(ctx, req.Provider, len(content))
	}
	return models.NewSuccessResponse(content), nil
}

func (s *Service) reject(ctx context.Context, req *models.AIProxyRequest, err error) {
	if s.hooks.OnRejected != nil {
		s.hooks.OnRejected(ctx, req.Provider, err)
	}
}

func (s *Service) invoke(ctx context.Context, client *http.Client, req *models.AIProxyRequest) (string, error) {
	kind, ok := models.ParseProviderKind(req.Provider)
	if !ok {
		return "", fmt.Errorf("Unsupported provider: %s", req.Provider)
	}

	strategy, err := s.registry.Get(kind)
	if err != nil {
		return "", fmt.Errorf("Unsupported provider: %s", req.Provider)
	}

	return providers.Invoke(ctx, client, strategy, req, func(wire *providers.WireRequest) {
		if s.hooks.OnSend != nil {
			s.hooks.OnSend(ctx, req.Provider, wire.LogURL())
		}
	})
}
