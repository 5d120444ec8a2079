package faq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	apperrors "github.com/yanqian/polyglot-faq/pkg/errors"
)

// Service exposes the FAQ API operations with language-keyed response caching.
type Service interface {
	List(ctx context.Context, lang Language) ([]View, error)
	Get(ctx context.Context, id int64, lang Language) (View, error)
	Create(ctx context.Context, in Input, lang Language) (View, error)
	Update(ctx context.Context, id int64, patch Patch, lang Language) (View, error)
	Delete(ctx context.Context, id int64) error
	Languages() []LanguageInfo
}

type service struct {
	cfg    Config
	store  *RecordStore
	cache  ResponseCache
	logger *slog.Logger

	// generation counts invalidations; a read only fills the cache when no write
	// invalidated it while the read was listing records.
	genMu      sync.Mutex
	generation uint64
}

// NewService wires up the FAQ domain.
func NewService(cfg Config, store *RecordStore, cache ResponseCache, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg.withDefaults(),
		store:  store,
		cache:  cache,
		logger: logger.With("component", "faq.service"),
	}
}

// CacheKey is the response cache key for lang under prefix.
func CacheKey(prefix string, lang Language) string {
	if prefix == "" {
		prefix = defaultCachePrefix
	}
	return fmt.Sprintf("%s_%s", prefix, lang)
}

func (s *service) List(ctx context.Context, lang Language) ([]View, error) {
	return s.views(ctx, ResolveLanguage(string(lang)))
}

func (s *service) Get(ctx context.Context, id int64, lang Language) (View, error) {
	views, err := s.views(ctx, ResolveLanguage(string(lang)))
	if err != nil {
		return View{}, err
	}
	for _, view := range views {
		if view.ID == id {
			return view, nil
		}
	}
	return View{}, notFound(id)
}

func (s *service) Create(ctx context.Context, in Input, lang Language) (View, error) {
	record, err := s.store.Create(ctx, in)
	if err != nil {
		return View{}, err
	}
	s.invalidate(ctx)
	return Render(record, ResolveLanguage(string(lang))), nil
}

func (s *service) Update(ctx context.Context, id int64, patch Patch, lang Language) (View, error) {
	record, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return View{}, err
	}
	s.invalidate(ctx)
	return Render(record, ResolveLanguage(string(lang))), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) Languages() []LanguageInfo {
	return Languages()
}

// views returns every FAQ rendered in lang, reading through the cache.
func (s *service) views(ctx context.Context, lang Language) ([]View, error) {
	key := CacheKey(s.cfg.CachePrefix, lang)
	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	gen := s.currentGeneration()
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(records))
	for _, record := range records {
		views = append(views, Render(record, lang))
	}

	payload, err := json.Marshal(views)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to encode faq list", err)
	}
	s.fill(ctx, key, payload, gen)
	return views, nil
}

func (s *service) currentGeneration() uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generation
}

// fill caches payload unless a write invalidated the cache after gen was read.
// Invalidations from other processes sharing the cache are not seen here; such a
// stale entry lives at most CacheTTL.
func (s *service) fill(ctx context.Context, key string, payload []byte, gen uint64) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.generation != gen {
		s.logger.Debug("faq cache fill skipped after concurrent write", "key", key)
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("faq cache save failed", "key", key, "error", err)
	}
}

func (s *service) cached(ctx context.Context, key string) ([]View, bool) {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("faq cache lookup failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var views []View
	if err := json.Unmarshal(payload, &views); err != nil {
		s.logger.Warn("faq cache entry unreadable", "key", key, "error", err)
		return nil, false
	}
	return views, true
}

// invalidate drops the cached response of every language, whichever one was written.
func (s *service) invalidate(ctx context.Context) {
	s.genMu.Lock()
	s.generation++
	s.genMu.Unlock()

	langs := AllLanguages()
	keys := make([]string, 0, len(langs))
	for _, lang := range langs {
		keys = append(keys, CacheKey(s.cfg.CachePrefix, lang))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("faq cache invalidation failed", "keys", keys, "error", err)
	}
}
