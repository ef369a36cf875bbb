package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/catchbot/internal/bootstrap"
	"github.com/osse101/catchbot/internal/config"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/server"
)

// @title CatchBot API
// @version 1.0
// @description Economy and reward catches for chat bot front ends.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("CatchBot exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn(w)
	}
	slog.Info(bootstrap.LogMsgStarting, "version", cfg.Version, "env", cfg.Environment)
	slog.Info(bootstrap.LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"db_driver", cfg.DBDriver,
		"rate_limit_backend", cfg.RateLimitBackend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, bootstrap.StartupTimeout)
	defer cancel()

	repos, err := bootstrap.InitializeRepositories(startCtx, cfg)
	if err != nil {
		return err
	}

	svc := bootstrap.InitializeServices(cfg, repos)
	if err := bootstrap.SyncCatalog(startCtx, cfg, repos, svc); err != nil {
		_ = repos.Close()
		return err
	}

	retention, err := bootstrap.StartRetention(ctx, cfg, repos)
	if err != nil {
		_ = repos.Close()
		return err
	}

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Services{
		Economy: svc.Economy,
		Catch:   svc.Catch,
		Limiter: svc.Limiter,
		Effects: svc.Effects,
		Health:  repos.Health,
	})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if err != nil {
			logger.FromContext(ctx).Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancelShutdown()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:       srv,
		Retention:    retention,
		Repositories: repos,
	})
	return err
}
