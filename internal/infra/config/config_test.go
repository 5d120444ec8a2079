package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 15*time.Minute, cfg.FAQ.CacheTTL)
	require.Equal(t, "faqs", cfg.FAQ.CachePrefix)
	require.Equal(t, StorageMemory, cfg.FAQ.Storage.Driver)
	require.Equal(t, ProviderGoogle, cfg.Translation.Provider)
	require.True(t, cfg.Translation.MarkupAware)
	require.Zero(t, cfg.Translation.Timeout)
	require.Less(t, cfg.HTTP.RateLimit.WriteRequestsPerMinute, cfg.HTTP.RateLimit.RequestsPerMinute)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
faq:
  cacheTtl: 5m
  storage:
    driver: sqlite
    sqlite:
      path: /tmp/faqs.db
translation:
  provider: none
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("FAQ_CACHE_PREFIX", "faq-cache")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TRANSLATION_TIMEOUT", "3s")
	t.Setenv("FAQ_RETRANSLATE_ON_CHANGE", "true")
	t.Setenv("HTTP_RATE_LIMIT_WRITE_RPM", "6")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 5*time.Minute, cfg.FAQ.CacheTTL)
	require.Equal(t, "faq-cache", cfg.FAQ.CachePrefix)
	require.Equal(t, StorageSQLite, cfg.FAQ.Storage.Driver)
	require.Equal(t, "/tmp/faqs.db", cfg.FAQ.Storage.SQLite.Path)
	require.Equal(t, ProviderNone, cfg.Translation.Provider)
	require.Equal(t, 3*time.Second, cfg.Translation.Timeout)
	require.True(t, cfg.FAQ.RetranslateOnChange)
	require.Equal(t, 6, cfg.HTTP.RateLimit.WriteRequestsPerMinute)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("faq: ["), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty address", func(c *Config) { c.HTTP.Address = "" }},
		{"zero cache ttl", func(c *Config) { c.FAQ.CacheTTL = 0 }},
		{"unknown driver", func(c *Config) { c.FAQ.Storage.Driver = "mongo" }},
		{"postgres without dsn", func(c *Config) { c.FAQ.Storage.Driver = StoragePostgres }},
		{"gorm without dsn", func(c *Config) { c.FAQ.Storage.Driver = StorageGorm }},
		{"sqlite without path", func(c *Config) {
			c.FAQ.Storage.Driver = StorageSQLite
			c.FAQ.Storage.SQLite.Path = " "
		}},
		{"valkey without addr", func(c *Config) { c.FAQ.Valkey.Enabled = true }},
		{"unknown provider", func(c *Config) { c.Translation.Provider = "deepl" }},
		{"openai without key", func(c *Config) { c.Translation.Provider = ProviderOpenAI }},
		{"negative timeout", func(c *Config) { c.Translation.Timeout = -time.Second }},
		{"bad rate limit", func(c *Config) { c.HTTP.RateLimit.Burst = 0 }},
		{"negative write rate", func(c *Config) { c.HTTP.RateLimit.WriteRequestsPerMinute = -1 }},
		{"write rate without burst", func(c *Config) { c.HTTP.RateLimit.WriteBurst = 0 }},
		{"bad retry", func(c *Config) { c.HTTP.Retry.MaxAttempts = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}

	cfg := defaultConfig()
	cfg.FAQ.Storage.Driver = StoragePostgres
	cfg.FAQ.Storage.Postgres.DSN = "postgres://localhost/faqs"
	cfg.Translation.Provider = ProviderOpenAI
	cfg.Translation.OpenAI.APIKey = "sk-test"
	require.NoError(t, cfg.Validate())
}
