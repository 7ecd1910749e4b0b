// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curated-reads/internal/curation"
)

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Print the featured books for a day",
	Long: `Featured pools the covered books of the shelf snapshot, shuffles them
with the day's seed and prints the first -n. The order is the same all day
(UTC) and changes from one day to the next.`,
	RunE: runFeatured,
}

func runFeatured(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	day := time.Now()
	if d, _ := cmd.Flags().GetString("date"); d != "" {
		parsed, err := time.Parse(time.DateOnly, d)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", d)
		}
		day = parsed
	}
	n, _ := cmd.Flags().GetInt("n")
	if n <= 0 {
		n = cfg.Curation.FeaturedCount
	}

	snap, err := curation.ReadSnapshot(cfg.Curation.SnapshotFile)
	if err != nil {
		return fmt.Errorf("%w (run \"curated-reads shelves build\" first)", err)
	}
	books := curation.Featured(snap.Shelves, n, day)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return curation.FormatJSON(books, cmd.OutOrStdout())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Featured for %s (seed %d)\n\n",
		day.UTC().Format(time.DateOnly), curation.SeedFor(day))
	curation.FormatBooks(books, cmd.OutOrStdout())
	return nil
}

func init() {
	featuredCmd.Flags().Int("n", 0, "number of books (default curation.featured_count)")
	featuredCmd.Flags().String("date", "", "day to rotate for, YYYY-MM-DD (default today)")
	featuredCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(featuredCmd)
}
