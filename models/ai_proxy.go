package models

// ProviderKind identifies one of the supported text-generation services
type ProviderKind string

const (
	ProviderQwen    ProviderKind = "qwen"
	ProviderGemini  ProviderKind = "gemini"
	ProviderChatGPT ProviderKind = "chatgpt"
)

// ProviderKinds lists every supported provider in a stable order
func ProviderKinds() []ProviderKind {
	return []ProviderKind{ProviderQwen, ProviderGemini, ProviderChatGPT}
}

// ParseProviderKind matches name exactly against the supported providers
func ParseProviderKind(name string) (ProviderKind, bool) {
	for _, kind := range ProviderKinds() {
		if string(kind) == name {
			return kind, true
		}
	}
	return "", false
}

// String implements fmt.Stringer
func (k ProviderKind) String() string {
	return string(k)
}

// AIProxyRequest is a single "generate text from a prompt" call routed to one provider.
// APIKey, Prompt and Model are forwarded to the provider as-is.
type AIProxyRequest struct {
	Provider string  `json:"provider" validate:"required"`
	APIKey   string  `json:"apiKey" validate:"required"`
	Prompt   string  `json:"prompt" validate:"required"`
	Model    string  `json:"model"`
	ProxyURL *string `json:"proxyUrl,omitempty"`
}

// AIProxyResponse is the normalized result envelope.
// Exactly one of Content and Error is set, matching Success.
type AIProxyResponse struct {
	Success bool    `json:"success"`
	Content *string `json:"content"`
	Error   *string `json:"error"`
}

// NewSuccessResponse wraps extracted provider text
func NewSuccessResponse(content string) *AIProxyResponse {
	return &AIProxyResponse{
		Success: true,
		Content: &content,
	}
}

// NewErrorResponse wraps a provider diagnostic
func NewErrorResponse(message string) *AIProxyResponse {
	return &AIProxyResponse{
		Success: false,
		Error:   &message,
	}
}

// Valid reports whether the envelope holds exactly the field its Success flag promises
func (r *AIProxyResponse) Valid() bool {
	if r == nil {
		return false
	}
	if r.Success {
		return r.Content != nil && r.Error == nil
	}
	return r.Content == nil && r.Error != nil
}
