// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/pdiddy/curated-reads/internal/curation"
	"github.com/pdiddy/curated-reads/internal/vibes"
	"github.com/pdiddy/curated-reads/pkg/types"
)

var bookCmd = &cobra.Command{
	Use:   "book <isbn>",
	Short: "Show one book and its mood tags",
	Args:  cobra.ExactArgs(1),
	RunE:  runBook,
}

func runBook(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	p, err := newProvider(cfg, clockwork.NewRealClock())
	if err != nil {
		return err
	}

	book, found, err := p.lookup.LookupBook(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("book %s not found", args[0])
	}
	moods := vibes.NewTagger(cfg.Moods).MoodTags(book)

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return curation.FormatJSON(struct {
			Book  types.Book  `json:"book"`
			Moods []vibes.Tag `json:"moods"`
		}{book, moods}, out)
	}

	fmt.Fprintf(out, "%s\n", book.Title)
	if len(book.Authors) > 0 {
		fmt.Fprintf(out, "by %s\n", strings.Join(book.Authors, ", "))
	}
	fmt.Fprintf(out, "\nID:        %s\n", book.ID)
	if book.PublishedYear != 0 {
		fmt.Fprintf(out, "Published: %d\n", book.PublishedYear)
	}
	if book.PageCount > 0 {
		fmt.Fprintf(out, "Pages:     %d\n", book.PageCount)
	}
	if book.Publisher != "" {
		fmt.Fprintf(out, "Publisher: %s\n", book.Publisher)
	}
	fmt.Fprintf(out, "Cover:     %t\n", book.HasCover())
	moodNames := make([]string, len(moods))
	for i, m := range moods {
		moodNames[i] = string(m)
	}
	fmt.Fprintf(out, "Moods:     %s\n", strings.Join(moodNames, ", "))
	return nil
}

func init() {
	bookCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(bookCmd)
}
