package faq

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrTranslationDisabled is the fallback reason when no backend is configured.
	ErrTranslationDisabled = errors.New("translation backend not configured")
	// ErrUnsupportedLanguage is the fallback reason for languages outside the target set.
	ErrUnsupportedLanguage = errors.New("unsupported target language")
	// ErrEmptyTranslation is the fallback reason when a backend returns blank output.
	ErrEmptyTranslation = errors.New("translation backend returned empty text")
)

// Translator is an external machine-translation backend. Implementations may fail.
type Translator interface {
	Translate(ctx context.Context, text string, lang Language) (string, error)
}

// Format tells a backend how the source text should be read.
type Format int

const (
	// FormatPlain is literal text. Characters such as '<' and '&' carry no meaning.
	FormatPlain Format = iota
	// FormatRich may carry HTML markup that must survive translation.
	FormatRich
)

// FormatTranslator is implemented by backends that treat rich text differently from plain text.
type FormatTranslator interface {
	Translator
	TranslateFormat(ctx context.Context, text string, lang Language, format Format) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(ctx context.Context, text string, lang Language) (string, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(ctx context.Context, text string, lang Language) (string, error) {
	return f(ctx, text, lang)
}

// TranslationResult is either a translation or a fallback to the source text.
type TranslationResult struct {
	Text     string
	Fallback bool
	Reason   error
}

// Translated builds a successful result.
func Translated(text string) TranslationResult {
	return TranslationResult{Text: text}
}

// FallbackTo builds a degraded result carrying the original text and why.
func FallbackTo(original string, reason error) TranslationResult {
	return TranslationResult{Text: original, Fallback: true, Reason: reason}
}

// Gateway wraps a Translator so that callers always get usable text back.
type Gateway struct {
	backend Translator
	timeout time.Duration
}

// NewGateway builds a gateway. A nil backend makes every call fall back; a zero timeout
// leaves deadlines to the backend client.
func NewGateway(backend Translator, timeout time.Duration) *Gateway {
	return &Gateway{backend: backend, timeout: timeout}
}

// Translate performs a single attempt at translating plain text into lang.
func (g *Gateway) Translate(ctx context.Context, text string, lang Language) TranslationResult {
	return g.TranslateFormat(ctx, text, lang, FormatPlain)
}

// TranslateFormat is Translate with an explicit source format. Backends that do not
// implement FormatTranslator receive the text as is.
func (g *Gateway) TranslateFormat(ctx context.Context, text string, lang Language, format Format) TranslationResult {
	if strings.TrimSpace(text) == "" {
		return Translated(text)
	}
	if !IsTarget(lang) {
		return FallbackTo(text, ErrUnsupportedLanguage)
	}
	if g == nil || g.backend == nil {
		return FallbackTo(text, ErrTranslationDisabled)
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.call(callCtx, text, lang, format)
	if err != nil {
		return FallbackTo(text, err)
	}
	if strings.TrimSpace(out) == "" {
		return FallbackTo(text, ErrEmptyTranslation)
	}
	return Translated(out)
}

func (g *Gateway) call(ctx context.Context, text string, lang Language, format Format) (string, error) {
	if ft, ok := g.backend.(FormatTranslator); ok {
		return ft.TranslateFormat(ctx, text, lang, format)
	}
	return g.backend.Translate(ctx, text, lang)
}
