// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/curated-reads/internal/secrets"
	"github.com/pdiddy/curated-reads/internal/vibes"
	"github.com/pdiddy/curated-reads/pkg/types"
)

// appConfig is the resolved configuration for one command run.
type appConfig struct {
	Provider types.ProviderConfig
	Curation types.CurationConfig
	Lists    types.ListsConfig
	Server   types.ServerConfig
	Log      types.LogConfig

	// Moods pins mood tags by ISBN-13 or provider id.
	Moods map[string][]vibes.Tag
}

func setDefaults() {
	viper.SetDefault("provider.base_url", "https://api2.isbndb.com")
	viper.SetDefault("provider.page_size", 20)
	viper.SetDefault("provider.requests_per_second", 1.0)
	viper.SetDefault("provider.max_retries", 5)
	viper.SetDefault("provider.timeout", 15*time.Second)
	viper.SetDefault("provider.breaker_failures", 5)
	viper.SetDefault("provider.breaker_cooldown", 30*time.Second)

	viper.SetDefault("curation.shelves_file", "config/shelves.yaml")
	viper.SetDefault("curation.snapshot_file", "data/shelves.yaml")
	viper.SetDefault("curation.require_cover", true)
	viper.SetDefault("curation.featured_count", 6)
	viper.SetDefault("curation.concurrency", 4)
	viper.SetDefault("curation.cache_ttl", 10*time.Minute)

	viper.SetDefault("lists.db_path", "data/lists.db")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.rate_limit_per_minute", 120)

	viper.SetDefault("log.level", "info")
}

// loadConfig reads the current viper state. The provider key falls back to
// .secrets/isbndb-api-key when provider.api_key is unset.
func loadConfig() appConfig {
	cfg := appConfig{
		Provider: types.ProviderConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("provider.timeout"),
				UserAgent: "curated-reads/" + version,
			},
			BaseURL:           viper.GetString("provider.base_url"),
			APIKey:            secrets.Resolve(viper.GetString("provider.api_key"), loadedSecrets, secrets.ISBNdbAPIKey),
			PageSize:          viper.GetInt("provider.page_size"),
			RequestsPerSecond: viper.GetFloat64("provider.requests_per_second"),
			MaxRetries:        viper.GetInt("provider.max_retries"),
			BreakerFailures:   viper.GetUint32("provider.breaker_failures"),
			BreakerCooldown:   viper.GetDuration("provider.breaker_cooldown"),
		},
		Curation: types.CurationConfig{
			ShelvesFile:   viper.GetString("curation.shelves_file"),
			SnapshotFile:  viper.GetString("curation.snapshot_file"),
			RequireCover:  viper.GetBool("curation.require_cover"),
			FeaturedCount: viper.GetInt("curation.featured_count"),
			Concurrency:   viper.GetInt("curation.concurrency"),
			YearWindowEnd: viper.GetInt("curation.year_window_end"),
			CacheTTL:      viper.GetDuration("curation.cache_ttl"),
		},
		Lists: types.ListsConfig{
			DBPath: viper.GetString("lists.db_path"),
		},
		Server: types.ServerConfig{
			Addr:               viper.GetString("server.addr"),
			CORSOrigins:        viper.GetStringSlice("server.cors_origins"),
			RateLimitPerMinute: viper.GetInt("server.rate_limit_per_minute"),
		},
		Log: types.LogConfig{
			Level: viper.GetString("log.level"),
			File:  viper.GetString("log.file"),
		},
	}
	if ua := viper.GetString("provider.user_agent"); ua != "" {
		cfg.Provider.UserAgent = ua
	}

	overrides := viper.GetStringMapStringSlice("moods")
	if len(overrides) > 0 {
		cfg.Moods = make(map[string][]vibes.Tag, len(overrides))
		for key, tags := range overrides {
			for _, t := range tags {
				cfg.Moods[key] = append(cfg.Moods[key], vibes.Tag(t))
			}
		}
	}
	return cfg
}
