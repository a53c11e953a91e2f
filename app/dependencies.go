package app

import (
	"context"
	"fmt"

	"github.com/upb/ai-proxy/config"
	"github.com/upb/ai-proxy/handlers"
	"github.com/upb/ai-proxy/internal/observability"
	"github.com/upb/ai-proxy/middleware"
	"github.com/upb/ai-proxy/services/article"
	"github.com/upb/ai-proxy/services/dispatch"
	"github.com/upb/ai-proxy/services/providers"
	"go.uber.org/zap"
)

// Version is reported by the status endpoint and the CLI; overridden at build time
var Version = "0.1.0"

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Dispatch
	Registry   *providers.Registry
	Dispatcher *dispatch.Service
	Defaults   dispatch.Defaults
	Metrics    *observability.Counters

	// Auth; nil when AUTH_JWT_SECRET is unset
	TokenValidator *middleware.HMACValidator
	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	ProxyHandler  *handlers.AIProxyHandler
	HealthHandler *handlers.HealthHandler
	PromptHandler *handlers.PromptHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDispatcher(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize dispatcher: %w", err)
	}

	deps.initAuth(cfg)
	deps.initHandlers(cfg)

	logger.Info("all dependencies initialized successfully",
		zap.Int("providers", deps.Registry.Count()),
		zap.Bool("auth_enabled", deps.AuthMiddleware != nil))
	return deps, nil
}

// initDispatcher builds the strategy registry and the dispatch service
func (d *Dependencies) initDispatcher(cfg *config.Config) error {
	registry, err := dispatch.NewDefaultRegistry(cfg.Providers.Endpoints())
	if err != nil {
		return err
	}

	d.Registry = registry
	d.Metrics = observability.NewCounters()
	d.Defaults = dispatch.Defaults{
		Models:   cfg.Providers.DefaultModels(),
		ProxyURL: cfg.Proxy.DefaultURL,
	}

	hooks := observability.NewDispatchHooks(observability.NewContextLogger(d.Logger), d.Metrics)
	d.Dispatcher = dispatch.NewService(registry, dispatch.Config{
		RequestTimeout: cfg.Proxy.RequestTimeout,
	}, hooks)

	for _, kind := range registry.Kinds() {
		d.Logger.Info("provider registered", zap.String("provider", kind.String()))
	}
	return nil
}

func (d *Dependencies) initAuth(cfg *config.Config) {
	if !cfg.AuthEnabled() {
		d.Logger.Warn("AUTH_JWT_SECRET not set, proxy endpoint is unauthenticated")
		return
	}
	d.TokenValidator = middleware.NewHMACValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.TokenValidator, d.Logger)
	d.Logger.Info("bearer authentication enabled")
}

func (d *Dependencies) initHandlers(cfg *config.Config) {
	d.ProxyHandler = handlers.NewAIProxyHandler(d.Dispatcher, d.Defaults, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(Version, cfg.Environment, d.Dispatcher, d.Metrics, d.Logger)
	d.PromptHandler = handlers.NewPromptHandler(article.BuildPrompt, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	// Sync logger; stderr/stdout sinks may report EINVAL, which is harmless
	_ = d.Logger.Sync()
	return nil
}
