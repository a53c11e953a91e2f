package chatgpt

import (
	"strings"

	"github.com/upb/ai-proxy/models"
	"github.com/upb/ai-proxy/services/providers"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	label          = "ChatGPT"
)

// ChatGPTAdapter implements the Strategy interface for OpenAI chat completions
type ChatGPTAdapter struct {
	config providers.ProviderConfig
}

// NewChatGPTAdapter creates a new ChatGPT adapter
func NewChatGPTAdapter(config providers.ProviderConfig) *ChatGPTAdapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &ChatGPTAdapter{config: config}
}

// Kind returns the provider kind
func (a *ChatGPTAdapter) Kind() models.ProviderKind {
	return models.ProviderChatGPT
}

// Label returns the display name used in diagnostics
func (a *ChatGPTAdapter) Label() string {
	return label
}

// BuildRequest builds a non-streaming chat completion request
func (a *ChatGPTAdapter) BuildRequest(req *models.AIProxyRequest) (*providers.WireRequest, error) {
	body := ChatGPTRequest{
		Model: req.Model,
		Messages: []ChatGPTMessage{
			{Role: "user", Content: req.Prompt},
		},
		Stream: false,
	}

	wire, err := providers.NewJSONRequest(label, a.config.BaseURL+"/chat/completions", body)
	if err != nil {
		return nil, err
	}
	wire.Header.Set("Authorization", "Bearer "+req.APIKey)

	return wire, nil
}

// ExtractContent reads choices[0].message.content
func (a *ChatGPTAdapter) ExtractContent(body []byte) (string, error) {
	doc, err := providers.DecodeDocument(label, body)
	if err != nil {
		return "", err
	}

	content, ok := providers.FirstContent(doc,
		providers.StringAt("choices", 0, "message", "content"),
	)
	if !ok {
		return "", providers.NoContentError(label)
	}
	return content, nil
}

// OpenAI-specific request types

type ChatGPTRequest struct {
	Model    string           `json:"model"`
	Messages []ChatGPTMessage `json:"messages"`
	Stream   bool             `json:"stream"`
}

type ChatGPTMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
