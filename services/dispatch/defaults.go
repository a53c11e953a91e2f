package dispatch

import "github.com/upb/ai-proxy/models"

// Defaults fill request fields the caller left empty
type Defaults struct {
	// Models maps a provider to the model used when the request names none
	Models map[models.ProviderKind]string

	// ProxyURL is used when the request carries no proxy
	ProxyURL string
}

// DefaultModels are the models used by the desktop client when none is chosen
func DefaultModels() map[models.ProviderKind]string {
	return map[models.ProviderKind]string{
		models.ProviderQwen:    "qwen-plus",
		models.ProviderGemini:  "gemini-1.0-pro",
		models.ProviderChatGPT: "gpt-3.5-turbo",
	}
}

// Apply returns a copy of req with defaults filled in; req itself is not modified
func (d Defaults) Apply(req *models.AIProxyRequest) *models.AIProxyRequest {
	out := *req

	if out.Model == "" {
		if kind, ok := models.ParseProviderKind(out.Provider); ok {
			out.Model = d.Models[kind]
		}
	}

	if (out.ProxyURL == nil || *out.ProxyURL == "") && d.ProxyURL != "" {
		proxyURL := d.ProxyURL
		out.ProxyURL = &proxyURL
	} else if out.ProxyURL != nil && *out.ProxyURL == "" {
		out.ProxyURL = nil
	}

	return &out
}
