// Package proxy turns an optional outbound proxy URL into HTTP client configuration.
package proxy

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMissingHost is returned when a proxy URL parses but names no host
var ErrMissingHost = errors.New("proxy URL has no host")

// supportedSchemes are the proxy schemes net/http can dial through
var supportedSchemes = map[string]bool{
	"http":    true,
	"https":   true,
	"socks5":  true,
	"socks5h": true,
}

// ConfigError is a pre-flight failure: the dispatch is aborted before any provider call
type ConfigError struct {
	Cause error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("Failed to set proxy: %v", e.Cause)
}

// Unwrap implements error unwrapping
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Hooks observe resolver outcomes. Nil funcs are skipped.
type Hooks struct {
	OnConfigured func(proxyURL string)
	OnError      func(raw string, err error)
}

// Resolver resolves proxy settings for a single dispatch
type Resolver struct {
	hooks Hooks
}

// NewResolver creates a resolver reporting to hooks
func NewResolver(hooks Hooks) *Resolver {
	return &Resolver{hooks: hooks}
}

// Resolve parses proxyURL as a proxy applied to every scheme.
// A nil proxyURL means no proxy and yields (nil, nil).
func (r *Resolver) Resolve(proxyURL *string) (*url.URL, error) {
	if proxyURL == nil {
		return nil, nil
	}

	u, err := Parse(*proxyURL)
	if err != nil {
		cfgErr := &ConfigError{Cause: err}
		if r.hooks.OnError != nil {
			r.hooks.OnError(*proxyURL, cfgErr)
		}
		return nil, cfgErr
	}

	if r.hooks.OnConfigured != nil {
		r.hooks.OnConfigured(u.Redacted())
	}
	return u, nil
}

// Parse validates a proxy URL. Values without a scheme are treated as http proxies.
func Parse(raw string) (*url.URL, error) {
	candidate := strings.TrimSpace(raw)
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return nil, err
	}
	if !supportedSchemes[strings.ToLower(u.Scheme)] {
		return nil, fmt.Errorf("unknown proxy scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, ErrMissingHost
	}
	return u, nil
}

// NewHTTPClient builds a client used for exactly one dispatch.
// With a nil proxy the transport keeps the environment proxy settings.
func NewHTTPClient(proxy *url.URL, timeout time.Duration) (*http.Client, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to build HTTP client: unexpected default transport %T", http.DefaultTransport)
	}

	transport := base.Clone()
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}
