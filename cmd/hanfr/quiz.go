package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/hanfr/internal/app"
	"github.com/at-ishikawa/hanfr/internal/cli"
	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/quiz"
)

func newQuizCommand() *cobra.Command {
	quizCommand := &cobra.Command{
		Use:   "quiz",
		Short: "Multiple-choice vocabulary quizzes",
	}

	quizCommand.AddCommand(newQuizStaticCommand())
	quizCommand.AddCommand(newQuizHistoryCommand())

	return quizCommand
}

func newQuizStaticCommand() *cobra.Command {
	var direction Direction
	var count int
	var categories []string
	command := &cobra.Command{
		Use:   "static",
		Short: "Quiz on the bundled vocabulary list, with four choices per question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withComponents(ctx, func(components *app.Components) error {
				n := count
				if !cmd.Flags().Changed("count") {
					n = components.Config.Quiz.DefaultCount
				}
				if n < quiz.MinStaticCount || n > quiz.MaxStaticCount {
					return fmt.Errorf("count must be between %d and %d, got %d", quiz.MinStaticCount, quiz.MaxStaticCount, n)
				}
				dir, err := resolveDirection(ctx, cmd, direction, components.State.Preferences)
				if err != nil {
					return err
				}

				generator := components.Static
				if len(categories) > 0 {
					generator, err = generator.WithCategories(categories...)
					if err != nil {
						return fmt.Errorf("generator.WithCategories(%v) > %w", categories, err)
					}
				}
				questions := generator.Generate(dir, n)
				printQuizStart(cmd, dir, len(questions))
				return cli.NewQuizCLI(questions, components.State.QuizStats).Run(ctx)
			})
		},
	}
	addDirectionFlag(command, &direction)
	command.Flags().IntVarP(&count, "count", "n", 10, fmt.Sprintf("number of questions, from %d to %d (default: quiz.default_count)", quiz.MinStaticCount, quiz.MaxStaticCount))
	command.Flags().StringSliceVar(&categories, "category", nil, "only ask words of these categories")
	return command
}

func newQuizHistoryCommand() *cobra.Command {
	var direction Direction
	command := &cobra.Command{
		Use:   "history",
		Short: "Quiz on your latest searches, with three choices per question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withComponents(ctx, func(components *app.Components) error {
				dir, err := resolveDirection(ctx, cmd, direction, components.State.Preferences)
				if err != nil {
					return err
				}
				history, err := components.State.History.List(ctx)
				if err != nil {
					return fmt.Errorf("history.List() > %w", err)
				}
				questions, err := components.History.Generate(ctx, history, dir)
				if err != nil {
					return fmt.Errorf("historyGenerator.Generate() > %w", err)
				}
				printQuizStart(cmd, dir, len(questions))
				return cli.NewQuizCLI(questions, nil).Run(ctx)
			})
		},
	}
	addDirectionFlag(command, &direction)
	return command
}

func printQuizStart(cmd *cobra.Command, direction krdict.Direction, count int) {
	fmt.Fprintf(cmd.OutOrStdout(), "Starting a %s quiz with %d question(s). Type the number of your answer, or 'quit' to stop.\n\n", direction.Label(), count)
}
