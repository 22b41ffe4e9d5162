package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/hanfr/internal/app"
	"github.com/at-ishikawa/hanfr/internal/bootstrap"
	"github.com/at-ishikawa/hanfr/internal/config"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "hanfr-server",
		Short:         "hanfr dictionary and quiz HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", os.Getenv("HANFR_CONFIG"), "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	runner := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	components, err := app.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("app.Build() > %w", err)
	}
	runner.AddShutdownHook(components.CloseHook)

	srv, err := components.NewHTTPServer()
	if err != nil {
		return errors.Join(err, components.Close())
	}
	runner.AddShutdownHook(srv.Shutdown)

	return runner.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
