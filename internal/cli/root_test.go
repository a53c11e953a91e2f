package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/ai-proxy/app"
	"github.com/upb/ai-proxy/middleware"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("PROXY_DEFAULT_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_JWT_ISSUER", "")
}

func newQwenUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("denied"))
			return
		}
		_, _ = w.Write([]byte(`{"output":{"text":"hello from qwen"}}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func execute(args []string, stdin string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := execute([]string{"version"}, "")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "ai-proxy version "+app.Version+"\n", out)
}

func TestGenerate(t *testing.T) {
	setTestEnv(t)
	upstream := newQwenUpstream(t)
	t.Setenv("QWEN_BASE_URL", upstream.URL)

	t.Run("prints content", func(t *testing.T) {
		code, out, errOut := execute([]string{"generate", "--provider", "qwen", "--api-key", "good", "--prompt", "hi"}, "")
		assert.Equal(t, ExitSuccess, code, errOut)
		assert.Equal(t, "hello from qwen\n", out)
	})

	t.Run("reads prompt from stdin", func(t *testing.T) {
		code, out, _ := execute([]string{"generate", "--provider", "qwen", "--api-key", "good", "--prompt", "-"}, "hi\n")
		assert.Equal(t, ExitSuccess, code)
		assert.Equal(t, "hello from qwen\n", out)
	})

	t.Run("provider error", func(t *testing.T) {
		code, out, errOut := execute([]string{"generate", "--provider", "qwen", "--api-key", "bad", "--prompt", "hi"}, "")
		assert.Equal(t, ExitProviderError, code)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "Qwen API error 401 Unauthorized: denied")
	})

	t.Run("production without auth secret", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")

		code, out, errOut := execute([]string{"generate", "--provider", "qwen", "--api-key", "good", "--prompt", "hi"}, "")
		assert.Equal(t, ExitSuccess, code, errOut)
		assert.Equal(t, "hello from qwen\n", out)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		code, _, errOut := execute([]string{"generate", "--provider", "claude", "--api-key", "k", "--prompt", "hi"}, "")
		assert.Equal(t, ExitProviderError, code)
		assert.Contains(t, errOut, "Unsupported provider: claude")
	})

	t.Run("malformed proxy", func(t *testing.T) {
		code, _, errOut := execute([]string{"generate", "--provider", "qwen", "--api-key", "good", "--prompt", "hi", "--proxy", "ftp://host:21"}, "")
		assert.Equal(t, ExitConfigError, code)
		assert.Contains(t, errOut, "Failed to set proxy")
	})

	t.Run("missing flags", func(t *testing.T) {
		code, _, errOut := execute([]string{"generate", "--provider", "qwen"}, "")
		assert.Equal(t, ExitUsageError, code)
		assert.Contains(t, errOut, "api-key")
	})

	t.Run("empty stdin prompt", func(t *testing.T) {
		code, _, errOut := execute([]string{"generate", "--provider", "qwen", "--api-key", "good", "--prompt", "-"}, "")
		assert.Equal(t, ExitUsageError, code)
		assert.Contains(t, errOut, "prompt must not be empty")
	})
}

const articleReply = "```json\n" + `{"titles":[{"title":"Brew Better","score":9},{"title":"Pour Over 101","score":8},{"title":"Bean Basics","score":7},{"title":"Grind Guide","score":7},{"title":"Morning Ritual","score":6}],"content":"# Coffee\n\nStart with fresh beans.","tags":["coffee","brewing","home","beans","grind","morning"]}` + "\n```"

// newArticleUpstream answers like Qwen and records the last prompt it received.
// The "junk" key gets a reply that is not an article.
func newArticleUpstream(t *testing.T, lastPrompt *atomic.Value) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Input struct {
				Messages []struct {
					Content string `json:"content"`
				} `json:"messages"`
			} `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Input.Messages) > 0 {
			lastPrompt.Store(body.Input.Messages[0].Content)
		}

		text := articleReply
		if r.Header.Get("Authorization") == "Bearer junk" {
			text = "I would rather not."
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"output": map[string]string{"text": text}})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGenerate_Article(t *testing.T) {
	setTestEnv(t)
	var lastPrompt atomic.Value
	upstream := newArticleUpstream(t, &lastPrompt)
	t.Setenv("QWEN_BASE_URL", upstream.URL)

	t.Run("prints parsed article", func(t *testing.T) {
		code, out, errOut := execute([]string{"generate", "--provider", "qwen", "--api-key", "good",
			"--keywords", "home coffee", "--length", "short", "--type", "tutorial", "--language", "en"}, "")
		require.Equal(t, ExitSuccess, code, errOut)

		prompt, _ := lastPrompt.Load().(string)
		assert.Contains(t, prompt, "**关键词**: home coffee")
		assert.Contains(t, prompt, "短文(300-500字)")
		assert.Contains(t, prompt, "教程指南")
		assert.Contains(t, prompt, "**输出语言**: English")

		assert.Contains(t, out, "1. [9] Brew Better")
		assert.Contains(t, out, "5. [6] Morning Ritual")
		assert.Contains(t, out, "coffee, brewing, home, beans, grind, morning")
		assert.Contains(t, out, "Start with fresh beans.")
	})

	t.Run("raw prints the reply as is", func(t *testing.T) {
		code, out, _ := execute([]string{"generate", "--provider", "qwen", "--api-key", "good", "--keywords", "coffee", "--raw"}, "")
		require.Equal(t, ExitSuccess, code)
		assert.Equal(t, articleReply+"\n", out)
	})

	t.Run("reply that is not an article", func(t *testing.T) {
		code, out, errOut := execute([]string{"generate", "--provider", "qwen", "--api-key", "junk", "--keywords", "coffee"}, "")
		assert.Equal(t, ExitProviderError, code)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "AI response is not a valid article: no JSON found in response")
	})

	t.Run("prompt and keywords are exclusive", func(t *testing.T) {
		code, _, errOut := execute([]string{"generate", "--provider", "qwen", "--api-key", "good", "--keywords", "coffee", "--prompt", "hi"}, "")
		assert.Equal(t, ExitUsageError, code)
		assert.Contains(t, errOut, "keywords")
	})

	t.Run("one of prompt or keywords is required", func(t *testing.T) {
		code, _, errOut := execute([]string{"generate", "--provider", "qwen", "--api-key", "good"}, "")
		assert.Equal(t, ExitUsageError, code)
		assert.Contains(t, errOut, "prompt")
	})
}

func TestPrompt(t *testing.T) {
	t.Run("prints the built prompt", func(t *testing.T) {
		code, out, _ := execute([]string{"prompt", "--keywords", "remote work", "--style", "creative"}, "")
		require.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "**关键词**: remote work")
		assert.Contains(t, out, "**写作风格**: 创意文学")
		assert.Contains(t, out, "**文章长度**: 中篇(800-1500字)")
	})

	t.Run("requires keywords", func(t *testing.T) {
		code, _, errOut := execute([]string{"prompt"}, "")
		assert.Equal(t, ExitUsageError, code)
		assert.Contains(t, errOut, "keywords")
	})
}

func TestToken(t *testing.T) {
	setTestEnv(t)

	t.Run("requires secret", func(t *testing.T) {
		code, _, errOut := execute([]string{"token"}, "")
		assert.Equal(t, ExitConfigError, code)
		assert.Contains(t, errOut, "AUTH_JWT_SECRET")
	})

	t.Run("mints a verifiable token", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "s3cret")
		t.Setenv("AUTH_JWT_ISSUER", "ai-proxy")

		code, out, _ := execute([]string{"token", "--subject", "desktop", "--ttl", "1h"}, "")
		require.Equal(t, ExitSuccess, code)

		claims, err := middleware.NewHMACValidator("s3cret", "ai-proxy").ValidateToken(context.Background(), strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, "desktop", claims.Sub)
	})
}

func TestServe_InvalidConfig(t *testing.T) {
	setTestEnv(t)
	t.Setenv("LOG_LEVEL", "loud")

	code, _, errOut := execute([]string{"serve"}, "")
	assert.Equal(t, ExitConfigError, code)
	assert.Contains(t, errOut, "invalid log level")
}

func TestServe_ProductionRequiresAuthSecret(t *testing.T) {
	setTestEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	code, _, errOut := execute([]string{"serve"}, "")
	assert.Equal(t, ExitConfigError, code)
	assert.Contains(t, errOut, "AUTH_JWT_SECRET is required in production")
}
