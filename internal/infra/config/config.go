package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers accepted by faq.storage.driver.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageGorm     = "gorm"
	StorageSQLite   = "sqlite"
)

// Translation providers accepted by translation.provider.
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	FAQ         FAQConfig         `yaml:"faq"`
	Translation TranslationConfig `yaml:"translation"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware. Reads and writes are limited
// separately; zero write values make writes share the read budget.
type RateLimitConfig struct {
	Enabled                bool `yaml:"enabled"`
	RequestsPerMinute      int  `yaml:"requestsPerMinute"`
	Burst                  int  `yaml:"burst"`
	WriteRequestsPerMinute int  `yaml:"writeRequestsPerMinute"`
	WriteBurst             int  `yaml:"writeBurst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// FAQConfig controls FAQ persistence and response caching.
type FAQConfig struct {
	CacheTTL            time.Duration `yaml:"cacheTtl"`
	CachePrefix         string        `yaml:"cachePrefix"`
	RetranslateOnChange bool          `yaml:"retranslateOnChange"`
	Valkey              ValkeyConfig  `yaml:"valkey"`
	Storage             StorageConfig `yaml:"storage"`
}

// ValkeyConfig contains connection information for the response cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// StorageConfig selects the FAQ record backend.
type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// PostgresConfig contains DSN and pooling settings. Also used by the gorm driver.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
	Migrate  bool   `yaml:"migrate"`
}

// SQLiteConfig points at the database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// TranslationConfig selects and tunes the machine translation backend.
type TranslationConfig struct {
	Provider    string        `yaml:"provider"`
	Timeout     time.Duration `yaml:"timeout"`
	MarkupAware bool          `yaml:"markupAware"`
	Google      GoogleConfig  `yaml:"google"`
	OpenAI      OpenAIConfig  `yaml:"openai"`
	Memo        MemoConfig    `yaml:"memo"`
}

// GoogleConfig overrides the public translate endpoint.
type GoogleConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// OpenAIConfig contains ChatGPT/OpenAI settings.
type OpenAIConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// MemoConfig controls reuse of finished translations.
type MemoConfig struct {
	Enabled  bool          `yaml:"enabled"`
	RedisURL string        `yaml:"redisUrl"`
	TTL      time.Duration `yaml:"ttl"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_WRITE_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.WriteRequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_WRITE_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.WriteBurst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("FAQ_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.FAQ.CacheTTL = parsed
		}
	}
	if v := os.Getenv("FAQ_CACHE_PREFIX"); v != "" {
		cfg.FAQ.CachePrefix = v
	}
	if v := os.Getenv("FAQ_RETRANSLATE_ON_CHANGE"); v != "" {
		cfg.FAQ.RetranslateOnChange = parseBool(v)
	}
	if v := os.Getenv("FAQ_VALKEY_ENABLED"); v != "" {
		cfg.FAQ.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("FAQ_VALKEY_ADDR"); v != "" {
		cfg.FAQ.Valkey.Addr = v
	}
	if v := os.Getenv("FAQ_STORAGE_DRIVER"); v != "" {
		cfg.FAQ.Storage.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("FAQ_POSTGRES_DSN"); v != "" {
		cfg.FAQ.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("FAQ_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Storage.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Storage.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_POSTGRES_MIGRATE"); v != "" {
		cfg.FAQ.Storage.Postgres.Migrate = parseBool(v)
	}
	if v := os.Getenv("FAQ_SQLITE_PATH"); v != "" {
		cfg.FAQ.Storage.SQLite.Path = v
	}
	if v := os.Getenv("TRANSLATION_PROVIDER"); v != "" {
		cfg.Translation.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("TRANSLATION_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Translation.Timeout = parsed
		}
	}
	if v := os.Getenv("TRANSLATION_MARKUP_AWARE"); v != "" {
		cfg.Translation.MarkupAware = parseBool(v)
	}
	if v := os.Getenv("GOOGLE_TRANSLATE_BASE_URL"); v != "" {
		cfg.Translation.Google.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Translation.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Translation.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Translation.OpenAI.Model = v
	}
	if v := os.Getenv("TRANSLATION_MEMO_ENABLED"); v != "" {
		cfg.Translation.Memo.Enabled = parseBool(v)
	}
	if v := os.Getenv("TRANSLATION_MEMO_REDIS_URL"); v != "" {
		cfg.Translation.Memo.RedisURL = v
	}
	if v := os.Getenv("TRANSLATION_MEMO_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Translation.Memo.TTL = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   30 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:                true,
				RequestsPerMinute:      120,
				Burst:                  20,
				WriteRequestsPerMinute: 20,
				WriteBurst:             5,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/healthz",
				},
			},
		},
		FAQ: FAQConfig{
			CacheTTL:    15 * time.Minute,
			CachePrefix: "faqs",
			Storage: StorageConfig{
				Driver: StorageMemory,
				Postgres: PostgresConfig{
					MaxConns: 4,
					MinConns: 0,
					Migrate:  true,
				},
				SQLite: SQLiteConfig{
					Path: "faqs.db",
				},
			},
		},
		Translation: TranslationConfig{
			Provider:    ProviderGoogle,
			MarkupAware: true,
			OpenAI: OpenAIConfig{
				Model:       "gpt-4o-mini",
				Temperature: 0.2,
			},
			Memo: MemoConfig{
				Enabled: true,
				TTL:     24 * time.Hour,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
		if c.HTTP.RateLimit.WriteRequestsPerMinute < 0 || c.HTTP.RateLimit.WriteBurst < 0 {
			return errors.New("http.rateLimit write limits cannot be negative")
		}
		if c.HTTP.RateLimit.WriteRequestsPerMinute > 0 && c.HTTP.RateLimit.WriteBurst == 0 {
			return errors.New("http.rateLimit.writeBurst must be positive when writeRequestsPerMinute is set")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if c.FAQ.CacheTTL <= 0 {
		return errors.New("faq.cacheTtl must be positive")
	}
	if strings.TrimSpace(c.FAQ.CachePrefix) == "" {
		return errors.New("faq.cachePrefix cannot be empty")
	}
	if c.FAQ.Valkey.Enabled && strings.TrimSpace(c.FAQ.Valkey.Addr) == "" {
		return errors.New("faq.valkey.addr cannot be empty when valkey cache is enabled")
	}
	switch c.FAQ.Storage.Driver {
	case StorageMemory:
	case StoragePostgres, StorageGorm:
		if strings.TrimSpace(c.FAQ.Storage.Postgres.DSN) == "" {
			return fmt.Errorf("faq.storage.postgres.dsn cannot be empty for driver %q", c.FAQ.Storage.Driver)
		}
	case StorageSQLite:
		if strings.TrimSpace(c.FAQ.Storage.SQLite.Path) == "" {
			return errors.New("faq.storage.sqlite.path cannot be empty")
		}
	default:
		return fmt.Errorf("faq.storage.driver %q is not supported", c.FAQ.Storage.Driver)
	}
	switch c.Translation.Provider {
	case ProviderGoogle, ProviderNone:
	case ProviderOpenAI:
		if strings.TrimSpace(c.Translation.OpenAI.APIKey) == "" {
			return errors.New("translation.openai.apiKey cannot be empty when provider is openai")
		}
	default:
		return fmt.Errorf("translation.provider %q is not supported", c.Translation.Provider)
	}
	if c.Translation.Timeout < 0 {
		return errors.New("translation.timeout cannot be negative")
	}
	if c.Translation.Memo.TTL < 0 {
		return errors.New("translation.memo.ttl cannot be negative")
	}
	return nil
}
