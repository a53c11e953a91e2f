package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderKind(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   ProviderKind
		wantOK bool
	}{
		{name: "qwen", input: "qwen", want: ProviderQwen, wantOK: true},
		{name: "gemini", input: "gemini", want: ProviderGemini, wantOK: true},
		{name: "chatgpt", input: "chatgpt", want: ProviderChatGPT, wantOK: true},
		{name: "unknown provider", input: "claude", wantOK: false},
		{name: "match is case sensitive", input: "Qwen", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := ParseProviderKind(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse("hello")

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Content)
	assert.Equal(t, "hello", *resp.Content)
	assert.Nil(t, resp.Error)
	assert.True(t, resp.Valid())
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("boom")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Content)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "boom", *resp.Error)
	assert.True(t, resp.Valid())
}

func TestAIProxyResponse_Valid(t *testing.T) {
	content := "a"
	msg := "b"

	assert.False(t, (*AIProxyResponse)(nil).Valid())
	assert.False(t, (&AIProxyResponse{Success: true}).Valid())
	assert.False(t, (&AIProxyResponse{Success: false}).Valid())
	assert.False(t, (&AIProxyResponse{Success: true, Content: &content, Error: &msg}).Valid())
	assert.False(t, (&AIProxyResponse{Success: false, Content: &content}).Valid())
}

func TestAIProxyResponse_JSON(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse("Unsupported provider: claude"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"content":null,"error":"Unsupported provider: claude"}`, string(data))
}

func TestAIProxyRequest_JSON(t *testing.T) {
	var req AIProxyRequest
	err := json.Unmarshal([]byte(`{"provider":"qwen","apiKey":"k","prompt":"p","model":"m","proxyUrl":"http://127.0.0.1:7890"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "qwen", req.Provider)
	assert.Equal(t, "k", req.APIKey)
	assert.Equal(t, "p", req.Prompt)
	assert.Equal(t, "m", req.Model)
	require.NotNil(t, req.ProxyURL)
	assert.Equal(t, "http://127.0.0.1:7890", *req.ProxyURL)
}
