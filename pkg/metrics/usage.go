package metrics

import "sync"

// TokenUsage captures LLM token counts spent on translations.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens,omitempty"`
	TotalTokens      int `json:"totalTokens"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// Plus returns the sum of u and other.
func (u TokenUsage) Plus(other TokenUsage) TokenUsage {
	return TokenUsage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
	}
}

// UsageCounter accumulates usage across concurrent calls.
type UsageCounter struct {
	mu    sync.Mutex
	total TokenUsage
	calls int
}

// Record adds one call's usage.
func (c *UsageCounter) Record(u TokenUsage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = c.total.Plus(u)
	c.calls++
}

// Snapshot returns the running total and the number of recorded calls.
func (c *UsageCounter) Snapshot() (TokenUsage, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, c.calls
}
