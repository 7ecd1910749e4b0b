// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/curated-reads/internal/secrets"
	"github.com/pdiddy/curated-reads/internal/vibes"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig()

	assert.Equal(t, "https://api2.isbndb.com", cfg.Provider.BaseURL)
	assert.Equal(t, 20, cfg.Provider.PageSize)
	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "curated-reads/"+version, cfg.Provider.UserAgent)
	assert.True(t, cfg.Curation.RequireCover)
	assert.Equal(t, 6, cfg.Curation.FeaturedCount)
	assert.Equal(t, 10*time.Minute, cfg.Curation.CacheTTL)
	assert.Equal(t, "data/lists.db", cfg.Lists.DBPath)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Nil(t, cfg.Moods)
}

func TestLoadConfigAPIKey(t *testing.T) {
	prev := loadedSecrets
	t.Cleanup(func() {
		loadedSecrets = prev
		viper.Set("provider.api_key", "")
	})

	loadedSecrets = map[string]string{secrets.ISBNdbAPIKey: "from-secrets"}
	assert.Equal(t, "from-secrets", loadConfig().Provider.APIKey)

	viper.Set("provider.api_key", "from-config")
	assert.Equal(t, "from-config", loadConfig().Provider.APIKey)
}

func TestLoadConfigMoods(t *testing.T) {
	t.Cleanup(func() { viper.Set("moods", nil) })

	viper.Set("moods", map[string][]string{"9780316556347": {"epic-fantasy", "book-club-bait"}})
	cfg := loadConfig()
	assert.Equal(t, []vibes.Tag{vibes.EpicFantasy, vibes.BookClubBait}, cfg.Moods["9780316556347"])
}
