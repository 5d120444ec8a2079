package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
	"github.com/yanqian/polyglot-faq/pkg/metrics"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIConfig configures the OpenAI-backed translator.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
}

// OpenAITranslator translates through chat completions.
type OpenAITranslator struct {
	client      *openai.Client
	model       string
	temperature float32
	usage       metrics.UsageCounter
}

// NewOpenAITranslator constructs the translator.
func NewOpenAITranslator(cfg OpenAIConfig) (*OpenAITranslator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key cannot be empty")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAITranslator{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

// Translate implements faq.Translator.
func (t *OpenAITranslator) Translate(ctx context.Context, text string, lang faq.Language) (string, error) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(lang)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: t.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai translation failed: %w", err)
	}
	t.usage.Record(metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	})
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("openai response empty")
	}
	return out, nil
}

// Usage reports the tokens spent so far and the number of completed calls.
func (t *OpenAITranslator) Usage() (metrics.TokenUsage, int) {
	return t.usage.Snapshot()
}

func systemPrompt(lang faq.Language) string {
	return fmt.Sprintf(`You translate FAQ entries into %s (%s).
- Return only the translation, with no notes or quotes.
- Do NOT translate HTML tags, attributes, URLs or placeholders such as {name} or %%s.
- Preserve leading and trailing whitespace.`, lang.Name(), lang)
}

var _ faq.Translator = (*OpenAITranslator)(nil)
