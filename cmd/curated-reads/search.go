// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/pdiddy/curated-reads/internal/curation"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search the metadata provider",
	Long: `Search sends a free-text query to ISBNdb and prints the raw results in
provider order. No ranking is applied; use curate for that.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	p, err := newProvider(cfg, clockwork.NewRealClock())
	if err != nil {
		return err
	}

	books, err := p.search.SearchBooks(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return curation.FormatJSON(books, cmd.OutOrStdout())
	}
	curation.FormatBooks(books, cmd.OutOrStdout())
	return nil
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
