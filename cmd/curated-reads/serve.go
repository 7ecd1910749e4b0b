// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/pdiddy/curated-reads/internal/curation"
	"github.com/pdiddy/curated-reads/internal/lists"
	"github.com/pdiddy/curated-reads/internal/server"
	"github.com/pdiddy/curated-reads/internal/vibes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long: `Serve exposes search, curated search, book details, shelves, the daily
featured rotation and reading lists over HTTP. Shelves come from the snapshot
written by "shelves build"; a missing snapshot serves empty shelves.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	clock := clockwork.NewRealClock()
	p, err := newProvider(cfg, clock)
	if err != nil {
		return err
	}

	store, err := lists.Open(cfg.Lists, clock)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := curation.ReadSnapshot(cfg.Curation.SnapshotFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		logger.Warn().Str("path", cfg.Curation.SnapshotFile).Msg("no shelf snapshot, serving empty shelves")
	}

	srv := server.New(cfg.Server, server.Deps{
		Searcher:      p.search,
		Lookup:        p.lookup,
		Curator:       p.curator(cfg),
		Lists:         store,
		Tagger:        vibes.NewTagger(cfg.Moods),
		Shelves:       snap.Shelves,
		FeaturedCount: cfg.Curation.FeaturedCount,
		Clock:         clock,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default server.addr)")

	rootCmd.AddCommand(serveCmd)
}
