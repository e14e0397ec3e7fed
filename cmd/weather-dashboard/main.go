package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/observability"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/source"
	"github.com/i474232898/weather-dashboard/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath, port, logLevel string

	cmd := &cobra.Command{
		Use:           "weather-dashboard",
		Short:         "Serve an interactive dashboard over a historical weather dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				logrus.WithError(err).Error("failed to load config")
				return err
			}
			if cmd.Flags().Changed("data") {
				cfg.DatasetPath = dataPath
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := config.ValidatePort(cfg.Port); err != nil {
				logrus.WithError(err).Error("invalid --port")
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "dataset file path or http(s) URL (overrides DATASET_PATH)")
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	return cmd
}

func run(ctx context.Context, cfg *config.AppConfig) error {
	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Load the dataset before serving anything; there is no partial dashboard.
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancelLoad()

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}
	ds, err := source.Load(loadCtx, source.New(cfg.DatasetPath, httpClient), log)
	if err != nil {
		if errors.Is(err, store.ErrDataLoad) {
			log.WithError(err).Error("dataset unavailable; refusing to start")
		}
		return err
	}

	dash := dashboard.New(ds, log, metrics)

	// Usage reporter.
	sched := scheduler.New(dash, cfg.ReportInterval, log)
	if err := sched.Start(); err != nil {
		log.WithError(err).Error("failed to start scheduler")
		return err
	}
	defer sched.Stop()

	app := httpapi.NewApp(httpapi.AppOptions{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		AccessLog:    log.IsLevelEnabled(logrus.DebugLevel),
	}, log)
	if err := httpapi.RegisterRoutes(app, dash, clockwork.NewRealClock()); err != nil {
		log.WithError(err).Error("failed to register routes")
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(sigCtx, app, ":"+cfg.Port, cfg.ShutdownTimeout, log)
}

// serve runs app until ctx is done, then shuts it down gracefully. A listen
// failure is returned immediately.
func serve(ctx context.Context, app *fiber.App, addr string, shutdownTimeout time.Duration, log *logrus.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("dashboard listening")
		errCh <- app.Listen(addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.WithError(err).Error("fiber server stopped")
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("error during shutdown")
		return err
	}
	log.Info("shutdown complete")
	return nil
}
