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
	"github.com/osse101/catchbot/internal/discord"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Discord bot exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.ValidateDiscordEnv(); err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.ServiceName = cfg.ServiceName + "-discord"

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if cfg.DiscordForceCommandUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

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

	bot, err := discord.New(discord.Config{
		Token:              cfg.DiscordToken,
		AppID:              cfg.DiscordAppID,
		ForceCommandUpdate: cfg.DiscordForceCommandUpdate,
	}, discord.Services{
		Economy: svc.Economy,
		Catch:   svc.Catch,
		Effects: svc.Effects,
	})
	if err != nil {
		retention.Stop()
		_ = repos.Close()
		return err
	}

	httpServer := discord.NewHTTPServer(cfg.DiscordHealthPort, bot, repos.Health...)
	httpServer.Start(ctx)

	runErr := bot.Run(ctx)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancelShutdown()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:       httpServer,
		Retention:    retention,
		Repositories: repos,
	})
	return runErr
}
