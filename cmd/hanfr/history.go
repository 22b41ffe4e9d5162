package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/hanfr/internal/app"
	"github.com/at-ishikawa/hanfr/internal/cli"
	"github.com/at-ishikawa/hanfr/internal/export"
)

func newHistoryCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "history",
		Short: "Show the search history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withComponents(ctx, func(components *app.Components) error {
				items, err := components.State.History.List(ctx)
				if err != nil {
					return fmt.Errorf("history.List() > %w", err)
				}
				cli.PrintHistory(cmd.OutOrStdout(), items)
				return nil
			})
		},
	}

	command.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete the whole search history",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				return withComponents(ctx, func(components *app.Components) error {
					return components.State.History.Clear(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "remove <index>",
			Short: "Delete one search, by its index in the history",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid index %q: %w", args[0], err)
				}
				ctx := cmd.Context()
				return withComponents(ctx, func(components *app.Components) error {
					if err := components.State.History.Remove(ctx, index); err != nil {
						return fmt.Errorf("history.Remove(%d) > %w", index, err)
					}
					return nil
				})
			},
		},
		newHistoryExportCommand(),
	)
	return command
}

func newHistoryExportCommand() *cobra.Command {
	var outputPath string
	command := &cobra.Command{
		Use:   "export",
		Short: "Write the search history as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withComponents(ctx, func(components *app.Components) (err error) {
				items, err := components.State.History.List(ctx)
				if err != nil {
					return fmt.Errorf("history.List() > %w", err)
				}

				var w io.Writer = cmd.OutOrStdout()
				if outputPath != "" {
					file, err := os.Create(outputPath)
					if err != nil {
						return fmt.Errorf("os.Create(%s) > %w", outputPath, err)
					}
					defer func() {
						if closeErr := file.Close(); closeErr != nil && err == nil {
							err = fmt.Errorf("file.Close() > %w", closeErr)
						}
					}()
					w = file
				}
				return export.WriteHistoryYAML(w, items)
			})
		},
	}
	command.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	return command
}
