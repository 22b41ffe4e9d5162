package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/hanfr/internal/app"
	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/state"
)

func newPreferencesCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     "preferences",
		Aliases: []string{"prefs"},
		Short:   "Show the saved preferences",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withComponents(ctx, func(components *app.Components) error {
				direction, err := components.State.Preferences.Direction(ctx)
				if err != nil {
					return fmt.Errorf("preferences.Direction() > %w", err)
				}
				theme, err := components.State.Preferences.Theme(ctx)
				if err != nil {
					return fmt.Errorf("preferences.Theme() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "direction: %s\ntheme: %s\n", direction, theme)
				return nil
			})
		},
	}

	command.AddCommand(
		&cobra.Command{
			Use:       "direction <ko-fr|fr-ko>",
			Short:     "Save the default search and quiz direction",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(krdict.KoreanToFrench), string(krdict.FrenchToKorean)},
			RunE: func(cmd *cobra.Command, args []string) error {
				direction, err := krdict.ParseDirection(args[0])
				if err != nil {
					return err
				}
				ctx := cmd.Context()
				return withComponents(ctx, func(components *app.Components) error {
					return components.State.Preferences.SetDirection(ctx, direction)
				})
			},
		},
		&cobra.Command{
			Use:   "theme <light|dark|toggle>",
			Short: "Save the theme of the web interface",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				return withComponents(ctx, func(components *app.Components) error {
					if args[0] == "toggle" {
						theme, err := components.State.Preferences.ToggleTheme(ctx)
						if err != nil {
							return fmt.Errorf("preferences.ToggleTheme() > %w", err)
						}
						fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", theme)
						return nil
					}
					theme, err := state.ParseTheme(args[0])
					if err != nil {
						return err
					}
					return components.State.Preferences.SetTheme(ctx, theme)
				})
			},
		},
	)
	return command
}
