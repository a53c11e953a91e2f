package handlers

import (
	"net/http"

	"github.com/upb/ai-proxy/middleware"
	"github.com/upb/ai-proxy/services/article"
	"github.com/upb/ai-proxy/utils"
	"go.uber.org/zap"
)

// PromptBuilder renders an article prompt from the given options
type PromptBuilder func(opts article.PromptOptions) (string, error)

// PromptResponse is returned by the prompt endpoint
type PromptResponse struct {
	Success bool   `json:"success"`
	Prompt  string `json:"prompt,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PromptHandler serves rendered article prompts
type PromptHandler struct {
	build  PromptBuilder
	logger *zap.Logger
}

// NewPromptHandler creates a new PromptHandler
func NewPromptHandler(build PromptBuilder, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{build: build, logger: logger}
}

// HandlePrompt handles GET /api/prompt.
// Query: keywords, articleLength, writingStyle, articleType, language.
func (h *PromptHandler) HandlePrompt(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := article.PromptOptions{
		Keywords:      q.Get("keywords"),
		ArticleLength: q.Get("articleLength"),
		WritingStyle:  q.Get("writingStyle"),
		ArticleType:   q.Get("articleType"),
		Language:      q.Get("language"),
	}

	prompt, err := h.build(opts)
	if err != nil {
		h.logger.Error("failed to build prompt",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		_ = utils.WriteJSON(w, http.StatusInternalServerError, PromptResponse{
			Success: false,
			Error:   "Failed to load prompt template",
		})
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, PromptResponse{Success: true, Prompt: prompt})
}
