package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate checks rules the struct tags cannot express.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if len(c.Kafka.Brokers) > 0 && c.Database.DSN == "" {
		return fmt.Errorf("kafka.brokers requires database.dsn: events are relayed from the postgres outbox")
	}
	if err := c.Matching.validate(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}
	if err := c.Reconcile.validate(); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	for k := range c.Extraction.ExtraTransliterations {
		if utf8.RuneCountInString(strings.TrimSpace(k)) != 1 {
			return fmt.Errorf("extraction.extra_transliterations: key %q must be a single character", k)
		}
	}
	return nil
}

func (m Matching) validate() error {
	if m.WindowHours <= 0 {
		return fmt.Errorf("window_hours must be > 0 (got %d)", m.WindowHours)
	}
	if m.FuzzyNameThreshold <= 0 || m.StrongNameThreshold > 1 {
		return fmt.Errorf("name thresholds must lie in (0, 1]")
	}
	if m.FuzzyNameThreshold > m.StrongNameThreshold {
		return fmt.Errorf("fuzzy_name_threshold (%v) must not exceed strong_name_threshold (%v)",
			m.FuzzyNameThreshold, m.StrongNameThreshold)
	}
	if m.SuggestionLimit <= 0 {
		return fmt.Errorf("suggestion_limit must be > 0 (got %d)", m.SuggestionLimit)
	}
	return nil
}

func (r Reconcile) validate() error {
	if r.StoreTimeout <= 0 {
		return fmt.Errorf("store_timeout must be > 0")
	}
	if r.FeedDefaultLimit <= 0 || r.FeedMaxLimit < r.FeedDefaultLimit {
		return fmt.Errorf("feed limits must satisfy 0 < default (%d) <= max (%d)", r.FeedDefaultLimit, r.FeedMaxLimit)
	}
	if r.FeedWorkers <= 0 {
		return fmt.Errorf("feed_workers must be > 0 (got %d)", r.FeedWorkers)
	}
	return nil
}
