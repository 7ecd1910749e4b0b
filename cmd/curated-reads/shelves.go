// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/pdiddy/curated-reads/internal/curation"
	"github.com/pdiddy/curated-reads/pkg/types"
)

var shelvesCmd = &cobra.Command{
	Use:   "shelves",
	Short: "Build and inspect curated shelves",
}

var shelvesBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Resolve every shelf item to a book and write a snapshot",
	Long: `Build reads the shelf definitions (curation.shelves_file), curates each
item against the provider and writes the result to curation.snapshot_file.
The server and the featured command read that snapshot.

With --shelf only that shelf is built and printed; the snapshot is left alone.`,
	RunE: runShelvesBuild,
}

var shelvesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the last shelf snapshot",
	RunE:  runShelvesShow,
}

func runShelvesBuild(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	sections, err := curation.LoadShelves(cfg.Curation.ShelvesFile)
	if err != nil {
		return err
	}

	key, _ := cmd.Flags().GetString("shelf")
	if key != "" {
		sec, err := curation.FindSection(sections, key)
		if err != nil {
			return err
		}
		sections = []types.ShelfSection{sec}
	}

	clock := clockwork.NewRealClock()
	p, err := newProvider(cfg, clock)
	if err != nil {
		return err
	}

	shelves, err := p.curator(cfg).BuildShelves(cmd.Context(), sections, curation.ShelfOptions{
		RequireCover: cfg.Curation.RequireCover,
		Concurrency:  cfg.Curation.Concurrency,
	})
	if err != nil {
		return err
	}

	if key == "" {
		snap := curation.Snapshot{GeneratedAt: clock.Now().UTC(), Shelves: shelves}
		if err := curation.WriteSnapshot(cfg.Curation.SnapshotFile, snap); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.Curation.SnapshotFile).Int("shelves", len(shelves)).Msg("wrote shelf snapshot")
	}
	return printShelves(cmd, shelves)
}

func runShelvesShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	snap, err := curation.ReadSnapshot(cfg.Curation.SnapshotFile)
	if err != nil {
		return fmt.Errorf("%w (run \"curated-reads shelves build\" first)", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Snapshot from %s\n\n", snap.GeneratedAt.Format("2006-01-02 15:04 MST"))
	return printShelves(cmd, snap.Shelves)
}

func printShelves(cmd *cobra.Command, shelves []types.CuratedShelf) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return curation.FormatJSON(shelves, cmd.OutOrStdout())
	}
	curation.FormatShelves(shelves, cmd.OutOrStdout())
	return nil
}

func init() {
	shelvesCmd.PersistentFlags().Bool("json", false, "output shelves as JSON")
	shelvesBuildCmd.Flags().String("shelf", "", "build only the shelf with this key")

	shelvesCmd.AddCommand(shelvesBuildCmd, shelvesShowCmd)
	rootCmd.AddCommand(shelvesCmd)
}
