package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/fetchkit/bootstrap"
	"github.com/kbukum/fetchkit/mockserver"
	"github.com/kbukum/fetchkit/observability"
	"github.com/kbukum/fetchkit/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock server",
	Example: `  mockserver serve
  mockserver serve --port 4000
  AUTH_SECRET=s3cret mockserver serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides server.port)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	opts := []mockserver.Option{mockserver.WithHealthChecker(app.Components.HealthAll)}
	if cfg.Observability.Enabled {
		metrics, err := initTelemetry(cmd.Context(), app, cfg)
		if err != nil {
			return err
		}
		opts = append(opts, mockserver.WithTracing(metrics))
	}

	mock, err := mockserver.New(*cfg, app.Logger, opts...)
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(server.NewComponent(mock.Server())); err != nil {
		return err
	}
	return app.Run(cmd.Context())
}

// initTelemetry installs OTLP trace and metric providers and flushes them
// on shutdown.
func initTelemetry(ctx context.Context, app *bootstrap.App[*mockserver.Config], cfg *mockserver.Config) (*observability.Metrics, error) {
	svc := observability.Service{Name: cfg.Name, Version: cfg.Version, Environment: cfg.Environment}
	providers, err := observability.Setup(ctx, svc, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	app.OnStop(providers.Shutdown)
	return providers.Metrics(cfg.Name)
}
