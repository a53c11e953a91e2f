// Command ai-proxy forwards prompts to hosted LLM providers.
//
// Usage:
//
//	ai-proxy serve                                   # run POST /api/ai-proxy
//	ai-proxy generate --provider qwen --api-key K --prompt "Hi"
//	ai-proxy generate --provider qwen --api-key K --keywords "coffee" --length short
//	ai-proxy prompt --keywords "coffee"               # print the article prompt
//	ai-proxy token --subject desktop --ttl 24h       # mint a bearer token
package main

import (
	"os"

	"github.com/upb/ai-proxy/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
