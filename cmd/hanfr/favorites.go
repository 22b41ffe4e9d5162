package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/hanfr/internal/app"
	"github.com/at-ishikawa/hanfr/internal/cli"
	"github.com/at-ishikawa/hanfr/internal/export"
)

func newFavoritesCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "favorites",
		Short: "Show the favorite entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withComponents(ctx, func(components *app.Components) error {
				entries, err := components.State.Favorites.List(ctx)
				if err != nil {
					return fmt.Errorf("favorites.List() > %w", err)
				}
				cli.PrintFavorites(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
	command.AddCommand(
		newFavoritesAddCommand(),
		&cobra.Command{
			Use:   "remove <target code>",
			Short: "Remove an entry from the favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				return withComponents(ctx, func(components *app.Components) error {
					if err := components.State.Favorites.Remove(ctx, args[0]); err != nil {
						return fmt.Errorf("favorites.Remove(%s) > %w", args[0], err)
					}
					return nil
				})
			},
		},
		newFavoritesExportCommand(),
	)
	return command
}

func newFavoritesAddCommand() *cobra.Command {
	var direction Direction
	var position int
	command := &cobra.Command{
		Use:   "add <query>",
		Short: "Search a word and add one of the results to the favorites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withComponents(ctx, func(components *app.Components) error {
				dir, err := resolveDirection(ctx, cmd, direction, components.State.Preferences)
				if err != nil {
					return err
				}
				result, err := components.Searcher.Search(ctx, strings.Join(args, " "), dir)
				if err != nil {
					return fmt.Errorf("searcher.Search() > %w", err)
				}
				if position < 1 || position > len(result.Entries) {
					return fmt.Errorf("no result #%d for %q, %d result(s) found", position, result.Query, result.Count)
				}

				entry := result.Entries[position-1]
				added, err := components.State.Favorites.Add(ctx, entry)
				if err != nil {
					return fmt.Errorf("favorites.Add() > %w", err)
				}
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to the favorites\n", entry.Word, entry.TargetCode)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is already a favorite\n", entry.Word, entry.TargetCode)
				}
				return nil
			})
		},
	}
	addDirectionFlag(command, &direction)
	command.Flags().IntVarP(&position, "result", "r", 1, "number of the search result to add")
	return command
}

func newFavoritesExportCommand() *cobra.Command {
	var templatePath string
	command := &cobra.Command{
		Use:   "export <output.md|output.pdf>",
		Short: "Export the favorites to Markdown, or to PDF for a .pdf output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := export.ParseFavoritesTemplate(templatePath)
			if err != nil {
				return fmt.Errorf("export.ParseFavoritesTemplate() > %w", err)
			}
			ctx := cmd.Context()
			return withComponents(ctx, func(components *app.Components) error {
				entries, err := components.State.Favorites.List(ctx)
				if err != nil {
					return fmt.Errorf("favorites.List() > %w", err)
				}
				path, err := export.ExportFavorites(args[0], tmpl, entries)
				if err != nil {
					return fmt.Errorf("export.ExportFavorites() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d favorite(s) to %s\n", len(entries), path)
				return nil
			})
		},
	}
	command.Flags().StringVar(&templatePath, "template", "", "Markdown template file (default: the bundled template)")
	return command
}
