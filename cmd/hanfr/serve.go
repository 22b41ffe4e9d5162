package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/hanfr/internal/app"
	"github.com/at-ishikawa/hanfr/internal/bootstrap"
)

func newServeCommand() *cobra.Command {
	var logLevel string
	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			setupLogger(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	command.Flags().StringVar(&logLevel, "log-level", "info", "log level, one of debug, info, warn or error")
	return command
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	components, err := app.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("app.Build() > %w", err)
	}

	runner := bootstrap.New()
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
