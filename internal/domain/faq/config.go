package faq

import "time"

const (
	defaultCacheTTL    = 15 * time.Minute
	defaultCachePrefix = "faqs"
)

// Config holds runtime knobs for the FAQ service.
type Config struct {
	CacheTTL    time.Duration
	CachePrefix string
	// RetranslateOnChange clears translations of edited canonical fields so they are
	// translated again on the same save.
	RetranslateOnChange bool
}

func (c Config) withDefaults() Config {
	if c.CacheTTL <= 0 {
		c.CacheTTL = defaultCacheTTL
	}
	if c.CachePrefix == "" {
		c.CachePrefix = defaultCachePrefix
	}
	return c
}
