// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/pdiddy/curated-reads/internal/curation"
	"github.com/pdiddy/curated-reads/internal/isbndb"
	"github.com/pdiddy/curated-reads/internal/match"
	"github.com/pdiddy/curated-reads/internal/searchcache"
)

// provider bundles the cached search and lookup paths over one client.
type provider struct {
	search *searchcache.CachedSearcher
	lookup *searchcache.CachedLookup
}

func newProvider(cfg appConfig, clock clockwork.Clock) (*provider, error) {
	client, err := isbndb.New(cfg.Provider, logger)
	if err != nil {
		return nil, fmt.Errorf("%w (set provider.api_key, CURATED_READS_PROVIDER_API_KEY or .secrets/isbndb-api-key)", err)
	}
	return &provider{
		search: searchcache.NewSearcher(client, cfg.Curation.CacheTTL, clock),
		lookup: searchcache.NewLookup(client, cfg.Curation.CacheTTL, clock),
	}, nil
}

func (p *provider) curator(cfg appConfig) *curation.Curator {
	c := &curation.Curator{
		Searcher: p.search,
		Lookup:   p.lookup,
		Logger:   logger,
	}
	if cfg.Curation.YearWindowEnd > 0 {
		c.Ranker = curation.Ranker{Weights: match.DefaultWeights.WithYearWindowEnd(cfg.Curation.YearWindowEnd)}
	}
	return c
}
