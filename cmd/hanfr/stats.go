package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/hanfr/internal/app"
	"github.com/at-ishikawa/hanfr/internal/cli"
)

func newStatsCommand() *cobra.Command {
	var reset bool
	command := &cobra.Command{
		Use:   "stats",
		Short: "Show the lifetime score of the vocabulary quizzes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withComponents(ctx, func(components *app.Components) error {
				if reset {
					if err := components.State.QuizStats.Reset(ctx); err != nil {
						return fmt.Errorf("quizStats.Reset() > %w", err)
					}
				}
				stats, err := components.State.QuizStats.Get(ctx)
				if err != nil {
					return fmt.Errorf("quizStats.Get() > %w", err)
				}
				cli.PrintQuizStats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	}
	command.Flags().BoolVar(&reset, "reset", false, "reset the score first")
	return command
}
