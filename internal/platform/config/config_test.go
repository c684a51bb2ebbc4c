package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-very-long-jwt-secret-for-testing-32+"

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTH_JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 48, cfg.Matching.WindowHours)
	assert.InDelta(t, 0.90, cfg.Matching.StrongNameThreshold, 1e-9)
	assert.InDelta(t, 0.75, cfg.Matching.FuzzyNameThreshold, 1e-9)
	assert.Equal(t, 5, cfg.Matching.SuggestionLimit)
	assert.Equal(t, 5*time.Second, cfg.Reconcile.StoreTimeout)
	assert.Equal(t, 50, cfg.Reconcile.FeedDefaultLimit)
	assert.Equal(t, 200, cfg.Reconcile.FeedMaxLimit)
	assert.Empty(t, cfg.Database.DSN)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := writeYAML(t, `
auth:
  jwt_secret: "`+testSecret+`"
matching:
  window_hours: 24
extraction:
  terminal_keys: ["imn", "ssas_number"]
  test_markers: ["TEST", "EXERCISE"]
reconcile:
  store_timeout: "2s"
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("MATCH_WINDOW_HOURS", "72")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 72, cfg.Matching.WindowHours)
	assert.Equal(t, []string{"imn", "ssas_number"}, cfg.Extraction.TerminalKeys)
	assert.Equal(t, []string{"TEST", "EXERCISE"}, cfg.Extraction.TestMarkers)
	assert.Equal(t, 2*time.Second, cfg.Reconcile.StoreTimeout)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Auth:     Auth{JWTSecret: testSecret},
		Matching: Matching{WindowHours: 48, StrongNameThreshold: 0.9, FuzzyNameThreshold: 0.75, SuggestionLimit: 5},
		Reconcile: Reconcile{
			StoreTimeout:     time.Second,
			FeedDefaultLimit: 50,
			FeedMaxLimit:     200,
			FeedWorkers:      4,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: "jwt_secret"},
		{name: "kafka without database", mutate: func(c *Config) { c.Kafka.Brokers = []string{"localhost:9092"} }, wantErr: "requires database.dsn"},
		{name: "zero window", mutate: func(c *Config) { c.Matching.WindowHours = 0 }, wantErr: "window_hours"},
		{name: "fuzzy above strong", mutate: func(c *Config) { c.Matching.FuzzyNameThreshold = 0.95 }, wantErr: "must not exceed"},
		{name: "default above max", mutate: func(c *Config) { c.Reconcile.FeedDefaultLimit = 500 }, wantErr: "feed limits"},
		{name: "multi-rune transliteration key", mutate: func(c *Config) {
			c.Extraction.ExtraTransliterations = map[string]string{"ab": "x"}
		}, wantErr: "single character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
