package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/upb/ai-proxy/models"
	"github.com/upb/ai-proxy/services/dispatch"
	"github.com/upb/ai-proxy/services/providers"
	"github.com/upb/ai-proxy/services/proxy"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Proxy         ProxyConfig
	Providers     ProvidersConfig
	Auth          AuthConfig
	CORS          CORSConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ProxyConfig holds settings applied to every dispatch
type ProxyConfig struct {
	// RequestTimeout bounds each provider call; zero keeps the transport defaults
	RequestTimeout time.Duration

	// DefaultURL is the outbound proxy used when a request carries none
	DefaultURL string
}

// ProvidersConfig holds per-provider endpoint overrides and default models
type ProvidersConfig struct {
	Qwen    ProviderConfig
	Gemini  ProviderConfig
	ChatGPT ProviderConfig
}

// ProviderConfig holds one provider's settings
type ProviderConfig struct {
	BaseURL      string // Empty keeps the public endpoint
	DefaultModel string
}

// AuthConfig holds bearer-token authentication settings
type AuthConfig struct {
	JWTSecret string // HS256 secret; empty disables authentication
	Issuer    string // Optional expected "iss"
}

// CORSConfig holds browser access settings
type CORSConfig struct {
	AllowedOrigins []string
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or console
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}
	validLogFormats = []string{"json", "console", "text"}
)

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	defaultModels := dispatch.DefaultModels()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Proxy: ProxyConfig{
			RequestTimeout: getEnvAsDuration("PROXY_REQUEST_TIMEOUT", 0),
			DefaultURL:     getEnv("PROXY_DEFAULT_URL", ""),
		},
		Providers: ProvidersConfig{
			Qwen: ProviderConfig{
				BaseURL:      getEnv("QWEN_BASE_URL", ""),
				DefaultModel: getEnv("QWEN_DEFAULT_MODEL", defaultModels[models.ProviderQwen]),
			},
			Gemini: ProviderConfig{
				BaseURL:      getEnv("GEMINI_BASE_URL", ""),
				DefaultModel: getEnv("GEMINI_DEFAULT_MODEL", defaultModels[models.ProviderGemini]),
			},
			ChatGPT: ProviderConfig{
				BaseURL:      getEnv("OPENAI_BASE_URL", ""),
				DefaultModel: getEnv("CHATGPT_DEFAULT_MODEL", defaultModels[models.ProviderChatGPT]),
			},
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			Issuer:    getEnv("AUTH_JWT_ISSUER", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:*", "tauri://localhost", "https://*"}),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}

	if c.Proxy.RequestTimeout < 0 {
		return fmt.Errorf("proxy request timeout cannot be negative")
	}

	if c.Proxy.DefaultURL != "" {
		if _, err := proxy.Parse(c.Proxy.DefaultURL); err != nil {
			return fmt.Errorf("invalid PROXY_DEFAULT_URL: %w", err)
		}
	}

	// Observability validation
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}
	if !contains(validLogLevels, c.Observability.LogLevel) {
		return fmt.Errorf("invalid log level %q", c.Observability.LogLevel)
	}
	if !contains(validLogFormats, c.Observability.LogFormat) {
		return fmt.Errorf("invalid log format %q", c.Observability.LogFormat)
	}

	return nil
}

// ValidateServer checks settings that only matter when exposing the HTTP endpoint
func (c *Config) ValidateServer() error {
	// Authentication is mandatory for a production server
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required in production")
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// AuthEnabled reports whether the proxy route requires a bearer token
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Endpoints returns the base URL overrides keyed by provider
func (c *ProvidersConfig) Endpoints() map[models.ProviderKind]providers.ProviderConfig {
	return map[models.ProviderKind]providers.ProviderConfig{
		models.ProviderQwen:    {BaseURL: c.Qwen.BaseURL},
		models.ProviderGemini:  {BaseURL: c.Gemini.BaseURL},
		models.ProviderChatGPT: {BaseURL: c.ChatGPT.BaseURL},
	}
}

// DefaultModels returns the model used per provider when a request names none
func (c *ProvidersConfig) DefaultModels() map[models.ProviderKind]string {
	return map[models.ProviderKind]string{
		models.ProviderQwen:    c.Qwen.DefaultModel,
		models.ProviderGemini:  c.Gemini.DefaultModel,
		models.ProviderChatGPT: c.ChatGPT.DefaultModel,
	}
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8080)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8080
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
