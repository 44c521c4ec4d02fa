package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 24, cfg.MaxArticleAgeHours)
	assert.Equal(t, 1, cfg.MinKeywordHits)
	assert.Equal(t, 0, cfg.MaxNoiseHits)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, time.Hour, cfg.DigestInterval)
	assert.Equal(t, 24, cfg.RecentWindowHours)
	assert.Equal(t, 30, cfg.ContextDays)
	assert.Equal(t, 8, cfg.MinDigestItems)
	assert.Equal(t, 70*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 4500, cfg.LLMMaxTokens)
	assert.Equal(t, 35*time.Second, cfg.RefreshInterval)
	assert.Contains(t, cfg.FeedKeywords, "FOMC")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MIN_DIGEST_ITEMS", "3")
	t.Setenv("FEED_KEYWORDS", "SPY,VIX")
	t.Setenv("DIGEST_INTERVAL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MinDigestItems)
	assert.Equal(t, []string{"SPY", "VIX"}, cfg.FeedKeywords)
	assert.Equal(t, 30*time.Minute, cfg.DigestInterval)
}

func TestBackendSelection(t *testing.T) {
	tests := []struct {
		name        string
		databaseURL string
		sqlitePath  string
		wantBackend string
		wantDSN     string
	}{
		{
			name:        "postgres when url set",
			databaseURL: "postgres://u:p@localhost/news",
			sqlitePath:  "news.db",
			wantBackend: BackendPostgres,
			wantDSN:     "postgres://u:p@localhost/news",
		},
		{
			name:        "sqlite fallback",
			sqlitePath:  "/var/lib/news.db",
			wantBackend: BackendSQLite,
			wantDSN:     "/var/lib/news.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DatabaseURL: tt.databaseURL, SQLitePath: tt.sqlitePath}

			backend, dsn := cfg.Backend()
			assert.Equal(t, tt.wantBackend, backend)
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}
