package faq

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

// prefixTranslator records calls and returns "[lang] text".
type prefixTranslator struct {
	mu    sync.Mutex
	calls []string
}

func (p *prefixTranslator) Translate(_ context.Context, text string, lang Language) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, string(lang)+":"+text)
	return "[" + string(lang) + "] " + text, nil
}

func (p *prefixTranslator) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type stubRepository struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]FAQ
	err     error
	// afterList runs once, after List has taken its snapshot.
	afterList func()
}

func newStubRepository() *stubRepository {
	return &stubRepository{nextID: 1, records: map[int64]FAQ{}}
}

func (r *stubRepository) List(context.Context) ([]FAQ, error) {
	r.mu.Lock()
	if r.err != nil {
		r.mu.Unlock()
		return nil, r.err
	}
	out := make([]FAQ, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, record.Clone())
	}
	hook := r.afterList
	r.afterList = nil
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *stubRepository) Get(_ context.Context, id int64) (FAQ, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return FAQ{}, false, r.err
	}
	record, ok := r.records[id]
	return record.Clone(), ok, nil
}

func (r *stubRepository) Insert(_ context.Context, record FAQ) (FAQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return FAQ{}, r.err
	}
	record = record.Clone()
	record.ID = r.nextID
	r.nextID++
	r.records[record.ID] = record
	return record.Clone(), nil
}

func (r *stubRepository) Update(_ context.Context, record FAQ) (FAQ, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return FAQ{}, false, r.err
	}
	if _, ok := r.records[record.ID]; !ok {
		return FAQ{}, false, nil
	}
	r.records[record.ID] = record.Clone()
	return record.Clone(), true, nil
}

func (r *stubRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

type stubCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	deleted []string
	getErr  error
	setErr  error
	delErr  error
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *stubCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	payload, ok := c.entries[key]
	return payload, ok, nil
}

func (c *stubCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *stubCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, keys...)
	if c.delErr != nil {
		return c.delErr
	}
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *stubCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.entries))
	for key := range c.entries {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// formatTranslator records the format each call was made with.
type formatTranslator struct {
	mu      sync.Mutex
	formats map[string]Format
}

func (f *formatTranslator) Translate(ctx context.Context, text string, lang Language) (string, error) {
	return f.TranslateFormat(ctx, text, lang, FormatPlain)
}

func (f *formatTranslator) TranslateFormat(_ context.Context, text string, lang Language, format Format) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.formats == nil {
		f.formats = map[string]Format{}
	}
	f.formats[text] = format
	return "[" + string(lang) + "] " + text, nil
}
