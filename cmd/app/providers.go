package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
	"github.com/yanqian/polyglot-faq/internal/infra/config"
	"github.com/yanqian/polyglot-faq/internal/infra/faqcache"
	"github.com/yanqian/polyglot-faq/internal/infra/faqrepo"
	"github.com/yanqian/polyglot-faq/internal/infra/translator"
)

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		CacheTTL:            cfg.FAQ.CacheTTL,
		CachePrefix:         cfg.FAQ.CachePrefix,
		RetranslateOnChange: cfg.FAQ.RetranslateOnChange,
	}
}

func provideFAQRepository(cfg *config.Config, logger *slog.Logger) (faq.Repository, func()) {
	fallback := func(reason string, err error) (faq.Repository, func()) {
		logger.Error(reason+", using memory repository", "driver", cfg.FAQ.Storage.Driver, "error", err)
		return faqrepo.NewMemoryRepository(), func() {}
	}

	switch cfg.FAQ.Storage.Driver {
	case config.StoragePostgres:
		pool, err := openPostgresPool(cfg.FAQ.Storage.Postgres)
		if err != nil {
			return fallback("postgres unavailable", err)
		}
		if cfg.FAQ.Storage.Postgres.Migrate {
			if err := faqrepo.Migrate(pool, logger); err != nil {
				pool.Close()
				return fallback("postgres migration failed", err)
			}
		}
		logger.Info("faq postgres repository enabled")
		return faqrepo.NewPostgresRepository(pool), pool.Close
	case config.StorageGorm:
		db, err := gorm.Open(postgres.Open(cfg.FAQ.Storage.Postgres.DSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return fallback("gorm open failed", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fallback("gorm connection unavailable", err)
		}
		repo, err := faqrepo.NewGormRepository(db)
		if err != nil {
			sqlDB.Close()
			return fallback("gorm automigrate failed", err)
		}
		logger.Info("faq gorm repository enabled")
		return repo, func() { sqlDB.Close() }
	case config.StorageSQLite:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		repo, err := faqrepo.OpenSQLite(ctx, cfg.FAQ.Storage.SQLite.Path)
		if err != nil {
			return fallback("sqlite open failed", err)
		}
		logger.Info("faq sqlite repository enabled", "path", cfg.FAQ.Storage.SQLite.Path)
		return repo, func() { repo.Close() }
	default:
		logger.Info("faq storage driver is memory, records are not persisted")
		return faqrepo.NewMemoryRepository(), func() {}
	}
}

func openPostgresPool(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return pool, nil
}

func provideResponseCache(cfg *config.Config, logger *slog.Logger) (faq.ResponseCache, func()) {
	if !cfg.FAQ.Valkey.Enabled {
		return faqcache.NewMemoryCache(), func() {}
	}
	opt, err := buildValkeyOptions(cfg.FAQ.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return faqcache.NewMemoryCache(), func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return faqcache.NewMemoryCache(), func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return faqcache.NewMemoryCache(), func() {}
	}
	logger.Info("faq valkey cache enabled", "addr", cfg.FAQ.Valkey.Addr)
	cache := faqcache.NewValkeyCache(client, "polyglot-faq")
	return cache, cache.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// provideTranslator builds the backend chain: provider, then the memo, then markup handling on
// the outside so per-node translations are memoized and the plain/rich hint reaches it.
// The "none" provider yields a nil translator and every translation falls back to the source text.
func provideTranslator(cfg *config.Config, logger *slog.Logger) (faq.Translator, func(), error) {
	var backend faq.Translator
	report := func() {}
	switch cfg.Translation.Provider {
	case config.ProviderNone:
		logger.Info("machine translation disabled")
		return nil, func() {}, nil
	case config.ProviderOpenAI:
		client, err := translator.NewOpenAITranslator(translator.OpenAIConfig{
			APIKey:      cfg.Translation.OpenAI.APIKey,
			BaseURL:     cfg.Translation.OpenAI.BaseURL,
			Model:       cfg.Translation.OpenAI.Model,
			Temperature: cfg.Translation.OpenAI.Temperature,
		})
		if err != nil {
			return nil, nil, err
		}
		backend = client
		report = func() {
			usage, calls := client.Usage()
			logger.Info("openai translation usage",
				"calls", calls,
				"promptTokens", usage.PromptTokens,
				"completionTokens", usage.CompletionTokens,
				"totalTokens", usage.TotalTokens,
			)
		}
	default:
		backend = translator.NewGoogleTranslator(cfg.Translation.Google.BaseURL)
	}
	logger.Info("machine translation enabled", "provider", cfg.Translation.Provider)

	cleanup := report
	if cfg.Translation.Memo.Enabled {
		memo, closeMemo := provideTranslationMemo(cfg.Translation.Memo, logger)
		backend = translator.NewMemoized(backend, memo, logger)
		cleanup = func() {
			report()
			closeMemo()
		}
	}
	if cfg.Translation.MarkupAware {
		backend = translator.NewMarkupAware(backend)
	}
	return backend, cleanup, nil
}

func provideTranslationMemo(cfg config.MemoConfig, logger *slog.Logger) (translator.Memo, func()) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return translator.NewMemoryMemo(), func() {}
	}
	memo, err := translator.DialRedisMemo(context.Background(), cfg.RedisURL, cfg.TTL)
	if err != nil {
		logger.Error("redis translation memo unavailable, using memory memo", "error", err)
		return translator.NewMemoryMemo(), func() {}
	}
	logger.Info("redis translation memo enabled")
	return memo, func() { memo.Close() }
}

func provideTranslationGateway(cfg *config.Config, backend faq.Translator) *faq.Gateway {
	return faq.NewGateway(backend, cfg.Translation.Timeout)
}
