package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backend identifiers.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Storage: Postgres when DATABASE_URL is set, otherwise the embedded
	// single-file store at SQLITE_PATH.
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"news.db"`

	// Feed
	FeedKeywords    []string      `env:"FEED_KEYWORDS" envSeparator:"," envDefault:"SPY,FOMC,Treasury,yields,inflation,options,gamma,liquidity"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"12s"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"35s"`

	// Pipeline
	MaxArticleAgeHours int `env:"MAX_ARTICLE_AGE_HOURS" envDefault:"24"`
	MinKeywordHits     int `env:"MIN_KEYWORD_HITS" envDefault:"1"`
	MaxNoiseHits       int `env:"MAX_NOISE_HITS" envDefault:"0"`

	// Retention
	RetentionDays int `env:"RETENTION_DAYS" envDefault:"30"`

	// Digest
	DigestInterval    time.Duration `env:"DIGEST_INTERVAL" envDefault:"1h"`
	RecentWindowHours int           `env:"RECENT_WINDOW_HOURS" envDefault:"24"`
	ContextDays       int           `env:"CONTEXT_DAYS" envDefault:"30"`
	MinDigestItems    int           `env:"MIN_DIGEST_ITEMS" envDefault:"8"`

	// LLM
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIModel     string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeout      time.Duration `env:"LLM_TIMEOUT" envDefault:"70s"`
	LLMMaxTokens    int           `env:"LLM_MAX_TOKENS" envDefault:"4500"`
	LLMRateLimitRPS float64       `env:"LLM_RATE_LIMIT_RPS" envDefault:"1"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Backend returns the selected storage backend and its DSN.
func (c *Config) Backend() (string, string) {
	if c.DatabaseURL != "" {
		return BackendPostgres, c.DatabaseURL
	}

	return BackendSQLite, c.SQLitePath
}
