// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/pdiddy/curated-reads/internal/curation"
	"github.com/pdiddy/curated-reads/internal/lists"
	"github.com/pdiddy/curated-reads/pkg/types"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage reading lists",
	Long: `Lists manages the reading lists stored in the local SQLite database
(lists.db_path). Books are added by ISBN and resolved through the provider.`,
}

// --- create subcommand ---

var listsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLists()
		if err != nil {
			return err
		}
		defer store.Close()

		description, _ := cmd.Flags().GetString("description")
		emoji, _ := cmd.Flags().GetString("emoji")
		visibility, _ := cmd.Flags().GetString("visibility")

		l, err := store.Create(cmd.Context(), lists.CreateInput{
			Name:        args[0],
			Description: description,
			Emoji:       emoji,
			Visibility:  types.ListVisibility(visibility),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", l.Name, l.ID)
		return nil
	},
}

// --- ls subcommand ---

var listsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all reading lists, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLists()
		if err != nil {
			return err
		}
		defer store.Close()

		all, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return curation.FormatJSON(all, out)
		}
		if len(all) == 0 {
			fmt.Fprintln(out, "No lists.")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-30s  %-8s  %5s  %s\n", "ID", "Name", "Visible", "Books", "Updated")
		for _, l := range all {
			fmt.Fprintf(out, "%-36s  %-30s  %-8s  %5d  %s\n",
				l.ID, l.Emoji+" "+l.Name, l.Visibility, len(l.Books), l.UpdatedAt)
		}
		return nil
	},
}

// --- show subcommand ---

var listsShowCmd = &cobra.Command{
	Use:   "show <list-id>",
	Short: "Show one list and its books",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLists()
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printList(cmd, l)
	},
}

// --- add subcommand ---

var listsAddCmd = &cobra.Command{
	Use:   "add <list-id> <isbn>",
	Short: "Look up a book and append it to a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		p, err := newProvider(cfg, clockwork.NewRealClock())
		if err != nil {
			return err
		}
		store, err := openLists()
		if err != nil {
			return err
		}
		defer store.Close()

		book, found, err := p.lookup.LookupBook(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("book %s not found", args[1])
		}

		added, err := store.AddBook(cmd.Context(), args[0], types.ListBookFrom(book))
		if err != nil {
			return err
		}
		if !added {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already on the list\n", book.Title)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", book.Title)
		return nil
	},
}

// --- rm subcommand ---

var listsRmCmd = &cobra.Command{
	Use:   "rm <list-id> <book-id>",
	Short: "Remove a book from a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLists()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.RemoveBook(cmd.Context(), args[0], args[1])
	},
}

// --- update subcommand ---

var listsUpdateCmd = &cobra.Command{
	Use:   "update <list-id>",
	Short: "Change a list's name, description, emoji or visibility",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd lists.MetaUpdate
		flags := cmd.Flags()
		if flags.Changed("name") {
			v, _ := flags.GetString("name")
			upd.Name = &v
		}
		if flags.Changed("description") {
			v, _ := flags.GetString("description")
			upd.Description = &v
		}
		if flags.Changed("emoji") {
			v, _ := flags.GetString("emoji")
			upd.Emoji = &v
		}
		if flags.Changed("visibility") {
			v, _ := flags.GetString("visibility")
			vis := types.ListVisibility(v)
			upd.Visibility = &vis
		}

		store, err := openLists()
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.UpdateMeta(cmd.Context(), args[0], upd)
		if err != nil {
			return err
		}
		return printList(cmd, l)
	},
}

// --- delete subcommand ---

var listsDeleteCmd = &cobra.Command{
	Use:   "delete <list-id>",
	Short: "Delete a list and its books",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLists()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Delete(cmd.Context(), args[0])
	},
}

// --- export subcommand ---

var listsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every list to YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLists()
		if err != nil {
			return err
		}
		defer store.Close()

		path, _ := cmd.Flags().GetString("out")
		if path == "" || path == "-" {
			return store.ExportYAML(cmd.Context(), cmd.OutOrStdout())
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		if err := store.ExportYAML(cmd.Context(), f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

// --- shared helpers ---

func openLists() (*lists.Store, error) {
	return lists.Open(loadConfig().Lists, clockwork.NewRealClock())
}

func printList(cmd *cobra.Command, l types.ReadingList) error {
	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return curation.FormatJSON(l, out)
	}
	fmt.Fprintf(out, "%s %s [%s]\n", l.Emoji, l.Name, l.Visibility)
	if l.Description != "" {
		fmt.Fprintln(out, l.Description)
	}
	fmt.Fprintln(out)
	if len(l.Books) == 0 {
		fmt.Fprintln(out, "No books.")
		return nil
	}
	for i, b := range l.Books {
		fmt.Fprintf(out, "%3d. %s (%s)\n", i+1, b.Title, b.ID)
	}
	return nil
}

func init() {
	listsCreateCmd.Flags().String("description", "", "list description")
	listsCreateCmd.Flags().String("emoji", "", "list emoji")
	listsCreateCmd.Flags().String("visibility", "", "private, unlisted or public (default private)")

	listsUpdateCmd.Flags().String("name", "", "new name")
	listsUpdateCmd.Flags().String("description", "", "new description")
	listsUpdateCmd.Flags().String("emoji", "", "new emoji")
	listsUpdateCmd.Flags().String("visibility", "", "private, unlisted or public")

	listsExportCmd.Flags().String("out", "", "output file (default stdout)")

	listsCmd.PersistentFlags().Bool("json", false, "output as JSON")
	listsCmd.AddCommand(listsCreateCmd, listsLsCmd, listsShowCmd, listsAddCmd,
		listsRmCmd, listsUpdateCmd, listsDeleteCmd, listsExportCmd)
	rootCmd.AddCommand(listsCmd)
}
