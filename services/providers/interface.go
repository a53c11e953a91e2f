package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/upb/ai-proxy/models"
)

// Strategy is the capability every provider adapter implements.
// Implementations hold no mutable state and are safe for concurrent use.
type Strategy interface {
	// Kind returns the provider this strategy serves
	Kind() models.ProviderKind

	// Label is the display name used in diagnostics (e.g. "Qwen")
	Label() string

	// BuildRequest builds the provider's wire request
	BuildRequest(req *models.AIProxyRequest) (*WireRequest, error)

	// ExtractContent parses a successful response body into text
	ExtractContent(body []byte) (string, error)
}

// WireRequest is the exact HTTP call sent to a provider
type WireRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte

	// SecretParam names a query parameter carrying a credential
	SecretParam string
}

// LogURL returns the request URL with any credential query parameter masked
func (w *WireRequest) LogURL() string {
	if w.SecretParam == "" {
		return w.URL
	}
	u, err := url.Parse(w.URL)
	if err != nil {
		return "<unparseable url>"
	}
	q := u.Query()
	if q.Has(w.SecretParam) {
		q.Set(w.SecretParam, "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// NewJSONRequest marshals body and prepares a POST with a JSON content type
func NewJSONRequest(label, url string, body interface{}) (*WireRequest, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, NewProviderError(label, "Failed to encode "+label+" request", 0, err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &WireRequest{
		Method: http.MethodPost,
		URL:    url,
		Header: header,
		Body:   payload,
	}, nil
}

// ProviderConfig holds per-provider overrides
type ProviderConfig struct {
	// BaseURL replaces the provider's public API root (optional)
	BaseURL string
}

// ProviderError is a provider-interaction failure. Its Error text is the
// human-readable diagnostic placed in the result envelope.
type ProviderError struct {
	// Provider label that generated the error
	Provider string

	// Message is the diagnostic without the cause
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// Body is the raw response body for non-2xx responses
	Body string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap implements error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new provider error
func NewProviderError(provider, message string, statusCode int, cause error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// NoContentError reports that no extraction attempt yielded text
func NoContentError(label string) *ProviderError {
	return NewProviderError(label, "No content in "+label+" response", 0, nil)
}

// Invoke runs one strategy end to end: build, execute once, extract.
// onSend, when non-nil, sees the wire request just before it is sent.
func Invoke(ctx context.Context, client *http.Client, strategy Strategy, req *models.AIProxyRequest, onSend func(*WireRequest)) (string, error) {
	wire, err := strategy.BuildRequest(req)
	if err != nil {
		return "", err
	}
	if onSend != nil {
		onSend(wire)
	}

	body, err := Execute(ctx, client, strategy.Label(), wire)
	if err != nil {
		return "", err
	}

	return strategy.ExtractContent(body)
}
