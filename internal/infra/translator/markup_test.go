package translator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
	"github.com/yanqian/polyglot-faq/internal/infra/faqrepo"
)

type recordingTranslator struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *recordingTranslator) Translate(_ context.Context, text string, _ faq.Language) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, text)
	if r.err != nil {
		return "", r.err
	}
	return strings.ToUpper(text), nil
}

func TestMarkupAwarePlainTextPassesThrough(t *testing.T) {
	inner := &recordingTranslator{}
	out, err := NewMarkupAware(inner).Translate(context.Background(), " plain text ", faq.LanguageSpanish)
	require.NoError(t, err)
	require.Equal(t, " PLAIN TEXT ", out)
	require.Equal(t, []string{" plain text "}, inner.calls)
}

func TestMarkupAwareTranslatesTextNodes(t *testing.T) {
	inner := &recordingTranslator{}
	out, err := NewMarkupAware(inner).Translate(context.Background(), `<p>Hello <b>world</b></p>`, faq.LanguageSpanish)
	require.NoError(t, err)
	require.Equal(t, `<p>HELLO <b>WORLD</b></p>`, out)
	require.Equal(t, []string{"Hello", "world"}, inner.calls)
}

func TestMarkupAwareSkipsCode(t *testing.T) {
	inner := &recordingTranslator{}
	out, err := NewMarkupAware(inner).Translate(context.Background(), `<p>Run <code>go test</code> now</p>`, faq.LanguageBengali)
	require.NoError(t, err)
	require.Equal(t, `<p>RUN <code>go test</code> NOW</p>`, out)
	require.Equal(t, []string{"Run", "now"}, inner.calls)
}

func TestMarkupAwareFailsOnNodeError(t *testing.T) {
	inner := &recordingTranslator{err: errors.New("boom")}
	_, err := NewMarkupAware(inner).Translate(context.Background(), `<p>Hello</p>`, faq.LanguageHindi)
	require.Error(t, err)
}

func TestPreserveWhitespace(t *testing.T) {
	require.Equal(t, "\n  hola ", preserveWhitespace("\n  hello ", "hola"))
	require.Equal(t, "hola", preserveWhitespace("hello", " hola "))
}

func TestMarkupAwareKeepsPlainQuestionsLiteral(t *testing.T) {
	for _, text := range []string{"Is 2 < 3?", "Tom & Jerry <3", "x<y and a>b", "Is <p> a tag?"} {
		inner := &recordingTranslator{}
		out, err := NewMarkupAware(inner).TranslateFormat(context.Background(), text, faq.LanguageHindi, faq.FormatPlain)
		require.NoError(t, err)
		require.Equal(t, strings.ToUpper(text), out)
		require.Equal(t, []string{text}, inner.calls)
	}
}

func TestMarkupAwareRichTextWithoutTagsStaysLiteral(t *testing.T) {
	for _, text := range []string{"Is 2 < 3?", "Tom & Jerry <3", "x<y and a>b"} {
		inner := &recordingTranslator{}
		out, err := NewMarkupAware(inner).TranslateFormat(context.Background(), text, faq.LanguageHindi, faq.FormatRich)
		require.NoError(t, err)
		require.Equal(t, strings.ToUpper(text), out)
	}
}

func TestLooksLikeMarkup(t *testing.T) {
	require.True(t, looksLikeMarkup(`<p>Hello</p>`))
	require.True(t, looksLikeMarkup(`See <a href="https://go.dev">go.dev</a>`))
	require.True(t, looksLikeMarkup(`line<br/>break`))
	require.False(t, looksLikeMarkup(`plain`))
	require.False(t, looksLikeMarkup(`x<y and a>b`))
	require.False(t, looksLikeMarkup(`a <= b`))
}

func TestRecordStoreStoresLiteralQuestionTranslations(t *testing.T) {
	inner := &recordingTranslator{}
	gateway := faq.NewGateway(NewMarkupAware(inner), 0)
	store := faq.NewRecordStore(faqrepo.NewMemoryRepository(), gateway, faq.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	record, err := store.Create(context.Background(), faq.Input{Question: "Is 2 < 3?", Answer: "<p>Yes, <b>always</b></p>"})
	require.NoError(t, err)
	for _, lang := range faq.TargetLanguages() {
		tr := record.Translation(lang)
		require.Equal(t, "IS 2 < 3?", tr.Question)
		require.Equal(t, "<p>YES, <b>ALWAYS</b></p>", tr.Answer)
	}
}
