package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/hanfr/internal/app"
	"github.com/at-ishikawa/hanfr/internal/config"
)

const configFileEnv = "HANFR_CONFIG"

var (
	configFile string
)

func main() {
	rootCommand := newRootCommand()
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	rootCommand := &cobra.Command{
		Use:           "hanfr",
		Short:         "Korean-French dictionary and vocabulary quiz",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if debugMode {
				level = slog.LevelDebug
			}
			setupLogger(level)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file path (default $%s)", configFileEnv))
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newSearchCommand(),
		newQuizCommand(),
		newHistoryCommand(),
		newFavoritesCommand(),
		newStatsCommand(),
		newPreferencesCommand(),
		newServeCommand(),
	)
	return rootCommand
}

// setupLogger writes text logs to stderr so that command output stays clean.
func setupLogger(level slog.Level) {
	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     level,
			AddSource: level <= slog.LevelDebug,
		})),
	)
}

func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		path = os.Getenv(configFileEnv)
	}
	loader, err := config.NewConfigLoader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// withComponents builds the components for the duration of fn.
func withComponents(ctx context.Context, fn func(components *app.Components) error) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	components, err := app.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("app.Build() > %w", err)
	}
	defer func() {
		if closeErr := components.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("components.Close() > %w", closeErr)
		}
	}()
	return fn(components)
}
