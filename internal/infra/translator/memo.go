package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"sync"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

// Memo remembers finished translations.
type Memo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Memoized skips the backend for text it has already translated into the same language.
type Memoized struct {
	inner  faq.Translator
	memo   Memo
	logger *slog.Logger
}

// NewMemoized wraps inner with memo.
func NewMemoized(inner faq.Translator, memo Memo, logger *slog.Logger) *Memoized {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memoized{inner: inner, memo: memo, logger: logger.With("component", "translator.memo")}
}

// Translate implements faq.Translator. Memo failures are logged and treated as misses.
func (m *Memoized) Translate(ctx context.Context, text string, lang faq.Language) (string, error) {
	key := MemoKey(text, lang)
	if cached, ok, err := m.memo.Get(ctx, key); err != nil {
		m.logger.Warn("memo lookup failed", "lang", lang, "error", err)
	} else if ok {
		return cached, nil
	}

	out, err := m.inner.Translate(ctx, text, lang)
	if err != nil {
		return "", err
	}
	if err := m.memo.Set(ctx, key, out); err != nil {
		m.logger.Warn("memo store failed", "lang", lang, "error", err)
	}
	return out, nil
}

// MemoKey is the hex sha256 of the trimmed text joined with the target language.
func MemoKey(text string, lang faq.Language) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:]) + ":" + string(lang)
}

// MemoryMemo keeps translations in process memory.
type MemoryMemo struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryMemo constructs an empty memo.
func NewMemoryMemo() *MemoryMemo {
	return &MemoryMemo{entries: make(map[string]string)}
}

func (m *MemoryMemo) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *MemoryMemo) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

var (
	_ faq.Translator = (*Memoized)(nil)
	_ Memo           = (*MemoryMemo)(nil)
)
