package qwen

import (
	"strings"

	"github.com/upb/ai-proxy/models"
	"github.com/upb/ai-proxy/services/providers"
)

const (
	defaultBaseURL = "https://dashscope.aliyuncs.com/api/v1"
	generationPath = "/services/aigc/text-generation/generation"
	label          = "Qwen"
)

// QwenAdapter implements the Strategy interface for DashScope text generation
type QwenAdapter struct {
	config providers.ProviderConfig
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(config providers.ProviderConfig) *QwenAdapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &QwenAdapter{config: config}
}

// Kind returns the provider kind
func (a *QwenAdapter) Kind() models.ProviderKind {
	return models.ProviderQwen
}

// Label returns the display name used in diagnostics
func (a *QwenAdapter) Label() string {
	return label
}

// BuildRequest builds a DashScope generation request in message result format
func (a *QwenAdapter) BuildRequest(req *models.AIProxyRequest) (*providers.WireRequest, error) {
	body := QwenRequest{
		Model: req.Model,
		Input: QwenInput{
			Messages: []QwenMessage{
				{Role: "user", Content: req.Prompt},
			},
		},
		Parameters: QwenParameters{
			ResultFormat: "message",
		},
	}

	wire, err := providers.NewJSONRequest(label, a.config.BaseURL+generationPath, body)
	if err != nil {
		return nil, err
	}
	wire.Header.Set("Authorization", "Bearer "+req.APIKey)

	return wire, nil
}

// ExtractContent prefers the message-format choice and falls back to plain text output
func (a *QwenAdapter) ExtractContent(body []byte) (string, error) {
	doc, err := providers.DecodeDocument(label, body)
	if err != nil {
		return "", err
	}

	content, ok := providers.FirstContent(doc,
		providers.StringAt("output", "choices", 0, "message", "content"),
		providers.StringAt("output", "text"),
	)
	if !ok {
		return "", providers.NoContentError(label)
	}
	return content, nil
}

// DashScope request types

type QwenRequest struct {
	Model      string         `json:"model"`
	Input      QwenInput      `json:"input"`
	Parameters QwenParameters `json:"parameters"`
}

type QwenInput struct {
	Messages []QwenMessage `json:"messages"`
}

type QwenMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type QwenParameters struct {
	ResultFormat string `json:"result_format"`
}
