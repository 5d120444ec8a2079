package translator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

var tagPattern = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)(?:\s[^<>]*)?/?>`)

// richTags are the elements that mark content as rich text.
var richTags = map[string]bool{
	"a": true, "b": true, "br": true, "blockquote": true, "code": true, "div": true,
	"em": true, "h1": true, "h2": true, "h3": true, "h4": true, "hr": true, "i": true,
	"img": true, "li": true, "ol": true, "p": true, "pre": true, "span": true,
	"strong": true, "sub": true, "sup": true, "table": true, "td": true, "th": true,
	"tr": true, "u": true, "ul": true,
}

var skippedTags = map[string]bool{
	"script": true,
	"style":  true,
	"code":   true,
	"pre":    true,
}

// MarkupAware translates the text nodes of rich-text content and leaves the markup intact.
// Plain text, and rich text without a known HTML tag, is handed to the inner translator unchanged.
type MarkupAware struct {
	inner faq.Translator
}

// NewMarkupAware wraps inner.
func NewMarkupAware(inner faq.Translator) *MarkupAware {
	return &MarkupAware{inner: inner}
}

// Translate implements faq.Translator. The text is treated as rich.
func (m *MarkupAware) Translate(ctx context.Context, text string, lang faq.Language) (string, error) {
	return m.TranslateFormat(ctx, text, lang, faq.FormatRich)
}

// TranslateFormat implements faq.FormatTranslator.
func (m *MarkupAware) TranslateFormat(ctx context.Context, text string, lang faq.Language, format faq.Format) (string, error) {
	if format != faq.FormatRich || !looksLikeMarkup(text) {
		return m.inner.Translate(ctx, text, lang)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return m.inner.Translate(ctx, text, lang)
	}

	var walk func(*html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && skippedTags[strings.ToLower(n.Data)] {
			return nil
		}
		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed == "" {
				return nil
			}
			translated, err := m.inner.Translate(ctx, trimmed, lang)
			if err != nil {
				return err
			}
			n.Data = preserveWhitespace(n.Data, translated)
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, node := range body.Nodes {
		if err := walk(node); err != nil {
			return "", err
		}
	}

	out, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("render markup: %w", err)
	}
	return out, nil
}

// looksLikeMarkup reports whether text contains at least one rich-text tag,
// so "2 < 3" or "x<y and a>b" stay plain.
func looksLikeMarkup(text string) bool {
	if !strings.Contains(text, "<") {
		return false
	}
	for _, match := range tagPattern.FindAllStringSubmatch(text, -1) {
		if richTags[strings.ToLower(match[1])] {
			return true
		}
	}
	return false
}

func preserveWhitespace(original, translated string) string {
	leadingLen := len(original) - len(strings.TrimLeft(original, " \t\n\r"))
	trailingLen := len(original) - len(strings.TrimRight(original, " \t\n\r"))
	return original[:leadingLen] + strings.TrimSpace(translated) + original[len(original)-trailingLen:]
}

var _ faq.FormatTranslator = (*MarkupAware)(nil)
