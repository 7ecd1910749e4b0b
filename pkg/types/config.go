package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "curated-reads/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig holds settings for the ISBNdb metadata provider.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API root (default https://api2.isbndb.com).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is sent verbatim in the Authorization header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// PageSize is the number of search results requested (default 20).
	PageSize int `json:"page_size" yaml:"page_size"`

	// RequestsPerSecond paces outgoing requests (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// BreakerFailures is the consecutive-failure count that opens the
	// circuit breaker (default 5).
	BreakerFailures uint32 `json:"breaker_failures" yaml:"breaker_failures"`

	// BreakerCooldown is how long the breaker stays open (default 30s).
	BreakerCooldown time.Duration `json:"breaker_cooldown" yaml:"breaker_cooldown"`
}

// CurationConfig holds settings for shelf curation.
type CurationConfig struct {
	// ShelvesFile is the YAML file with shelf definitions.
	ShelvesFile string `json:"shelves_file" yaml:"shelves_file"`

	// SnapshotFile is where built shelves are written and served from.
	SnapshotFile string `json:"snapshot_file" yaml:"snapshot_file"`

	// RequireCover disqualifies coverless candidates on shelves (default true).
	RequireCover bool `json:"require_cover" yaml:"require_cover"`

	// FeaturedCount is the size of the daily featured rotation (default 6).
	FeaturedCount int `json:"featured_count" yaml:"featured_count"`

	// Concurrency bounds concurrent curation requests (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// YearWindowEnd overrides the last year of the plausible-edition window.
	// Zero keeps the default weight table.
	YearWindowEnd int `json:"year_window_end,omitempty" yaml:"year_window_end,omitempty"`

	// CacheTTL is how long search results are reused (default 10m).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// ListsConfig holds settings for the reading-list store.
type ListsConfig struct {
	// DBPath is the SQLite database file (default data/lists.db).
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default :8080).
	Addr string `json:"addr" yaml:"addr"`

	// CORSOrigins lists allowed browser origins.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins"`

	// RateLimitPerMinute caps requests per client IP (default 120).
	RateLimitPerMinute int `json:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// File enables a rotating log file in addition to stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}
