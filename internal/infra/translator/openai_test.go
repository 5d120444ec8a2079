package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
	"github.com/yanqian/polyglot-faq/pkg/metrics"
)

func TestOpenAITranslatorTranslate(t *testing.T) {
	var received struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","model":"gpt-test","choices":[{"index":0,"message":{"role":"assistant","content":"  नमस्ते  "},"finish_reason":"stop"}],"usage":{"prompt_tokens":40,"completion_tokens":6,"total_tokens":46}}`))
	}))
	defer server.Close()

	translator, err := NewOpenAITranslator(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1/",
		Model:   "gpt-test",
	})
	require.NoError(t, err)

	out, err := translator.Translate(context.Background(), "Hello", faq.LanguageHindi)
	require.NoError(t, err)
	require.Equal(t, "नमस्ते", out)
	require.Equal(t, "gpt-test", received.Model)
	require.Len(t, received.Messages, 2)
	require.Equal(t, "system", received.Messages[0].Role)
	require.Contains(t, received.Messages[0].Content, "Hindi")
	require.Equal(t, "user", received.Messages[1].Role)
	require.Equal(t, "Hello", received.Messages[1].Content)

	usage, calls := translator.Usage()
	require.Equal(t, 1, calls)
	require.Equal(t, 46, usage.TotalTokens)
	require.Equal(t, 40, usage.PromptTokens)
}

func TestOpenAITranslatorEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	translator, err := NewOpenAITranslator(OpenAIConfig{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)
	require.Equal(t, defaultOpenAIModel, translator.model)

	_, err = translator.Translate(context.Background(), "Hello", faq.LanguageTelugu)
	require.Error(t, err)

	usage, calls := translator.Usage()
	require.Equal(t, 1, calls)
	require.Equal(t, metrics.TokenUsage{}, usage)
}

func TestNewOpenAITranslatorRequiresKey(t *testing.T) {
	_, err := NewOpenAITranslator(OpenAIConfig{APIKey: " "})
	require.Error(t, err)
}
