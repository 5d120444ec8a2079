package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

const defaultGoogleBaseURL = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator calls the public Google Translate web endpoint.
type GoogleTranslator struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogleTranslator builds a client for baseURL, or the public endpoint when empty.
func NewGoogleTranslator(baseURL string) *GoogleTranslator {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultGoogleBaseURL
	}
	return &GoogleTranslator{
		baseURL: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Translate implements faq.Translator.
func (c *GoogleTranslator) Translate(ctx context.Context, text string, lang faq.Language) (string, error) {
	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", "auto")
	query.Set("tl", string(lang))
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("translate request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}
	return parseGoogleResponse(body)
}

// parseGoogleResponse joins the translated segments of a response shaped like
// [[["translated","source",...], ...], null, "en", ...].
func parseGoogleResponse(body []byte) (string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(raw) == 0 {
		return "", errors.New("translate response empty")
	}
	var segments [][]any
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", fmt.Errorf("decode translate segments: %w", err)
	}

	var builder strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		if part, ok := segment[0].(string); ok {
			builder.WriteString(part)
		}
	}
	out := builder.String()
	if strings.TrimSpace(out) == "" {
		return "", errors.New("translate response had no segments")
	}
	return out, nil
}

var _ faq.Translator = (*GoogleTranslator)(nil)
