package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/hanfr/internal/app"
	"github.com/at-ishikawa/hanfr/internal/cli"
)

func newSearchCommand() *cobra.Command {
	var direction Direction
	var jsonOutput bool
	command := &cobra.Command{
		Use:   "search <query>",
		Short: "Look a Korean or French word up in KRDict",
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
				if _, err := components.State.History.Push(ctx, result.Query, result.Direction); err != nil {
					slog.Default().Warn("failed to record a search in the history",
						slog.String("query", result.Query),
						slog.Any("error", err),
					)
				}

				if jsonOutput {
					encoder := json.NewEncoder(cmd.OutOrStdout())
					encoder.SetIndent("", "  ")
					return encoder.Encode(result)
				}
				cli.PrintSearchResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
	addDirectionFlag(command, &direction)
	command.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	return command
}
