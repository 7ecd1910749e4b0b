// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/pdiddy/curated-reads/internal/curation"
	"github.com/pdiddy/curated-reads/pkg/types"
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Find the canonical edition for a title and author",
	Long: `Curate searches for --title and --author, ranks every candidate and
prints the winner followed by the full ranking. Scores marked with "!" are
disqualified (no cover while --require-cover is set).

With --isbn the given edition is looked up first and used as-is when it has
a cover; otherwise curate falls back to the search.`,
	RunE: runCurate,
}

func runCurate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")
	isbn, _ := cmd.Flags().GetString("isbn")
	requireCover, _ := cmd.Flags().GetBool("require-cover")

	target := types.MatchTarget{Title: title, Author: author, RequireCover: requireCover, ISBNOverride: isbn}
	if target.Query() == "" {
		return fmt.Errorf("--title or --author is required")
	}

	cfg := loadConfig()
	p, err := newProvider(cfg, clockwork.NewRealClock())
	if err != nil {
		return err
	}

	res, err := p.curator(cfg).Curate(cmd.Context(), target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return curation.FormatJSON(res, out)
	}

	switch {
	case res.Pinned:
		fmt.Fprintf(out, "Pinned: %s (%s)\n", res.Book.Title, res.Book.ID)
		return nil
	case res.Found:
		fmt.Fprintf(out, "Best: %s (%s)\n\n", res.Book.Title, res.Book.ID)
	default:
		fmt.Fprint(out, "No acceptable match.\n\n")
	}
	curation.FormatRanked(res.Ranked, out)
	return nil
}

func init() {
	curateCmd.Flags().String("title", "", "target title")
	curateCmd.Flags().String("author", "", "target author")
	curateCmd.Flags().String("isbn", "", "pinned edition (ISBN-10 or ISBN-13)")
	curateCmd.Flags().Bool("require-cover", false, "disqualify candidates without a cover")
	curateCmd.Flags().Bool("json", false, "output the result as JSON")

	rootCmd.AddCommand(curateCmd)
}
