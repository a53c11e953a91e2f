package gemini

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/upb/ai-proxy/models"
	"github.com/upb/ai-proxy/services/providers"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	label          = "Gemini"
)

// GeminiAdapter implements the Strategy interface for Gemini generateContent.
// The API key travels in the query string, not in a header.
type GeminiAdapter struct {
	config providers.ProviderConfig
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(config providers.ProviderConfig) *GeminiAdapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &GeminiAdapter{config: config}
}

// Kind returns the provider kind
func (a *GeminiAdapter) Kind() models.ProviderKind {
	return models.ProviderGemini
}

// Label returns the display name used in diagnostics
func (a *GeminiAdapter) Label() string {
	return label
}

// BuildRequest builds a single-turn generateContent request
func (a *GeminiAdapter) BuildRequest(req *models.AIProxyRequest) (*providers.WireRequest, error) {
	body := GeminiRequest{
		Contents: []GeminiContent{
			{Parts: []GeminiPart{{Text: req.Prompt}}},
		},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		a.config.BaseURL, url.PathEscape(req.Model), url.QueryEscape(req.APIKey))

	wire, err := providers.NewJSONRequest(label, endpoint, body)
	if err != nil {
		return nil, err
	}
	wire.SecretParam = "key"

	return wire, nil
}

// ExtractContent concatenates the text of every part of the first candidate.
// Other candidates are ignored.
func (a *GeminiAdapter) ExtractContent(body []byte) (string, error) {
	doc, err := providers.DecodeDocument(label, body)
	if err != nil {
		return "", err
	}

	partsPath := []interface{}{"candidates", 0, "content", "parts"}
	if _, ok := providers.ArrayAt(doc, partsPath...); !ok {
		return "", providers.NewProviderError(label, "No parts in Gemini response", 0, nil)
	}

	content, ok := providers.FirstContent(doc, providers.ConcatTextAt(partsPath...))
	if !ok {
		return "", providers.NoContentError(label)
	}
	return content, nil
}

// Gemini request types

type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text"`
}
