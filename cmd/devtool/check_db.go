package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/catchbot/internal/bootstrap"
	"github.com/osse101/catchbot/internal/config"
)

const (
	checkDBAttempts = 30
	checkDBInterval = time.Second
)

// CheckDBCommand waits until every configured store answers a ping
type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Check that the configured stores are reachable and migrated"
}

func (c *CheckDBCommand) Run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	PrintHeader(fmt.Sprintf("Checking %s store (%s rate limiting)", cfg.DBDriver, cfg.RateLimitBackend))

	var lastErr error
	for attempt := 1; attempt <= checkDBAttempts; attempt++ {
		if lastErr = ping(ctx, cfg); lastErr == nil {
			PrintSuccess("Stores are ready")
			return nil
		}
		PrintInfo("Waiting for stores... (%d/%d): %v", attempt, checkDBAttempts, lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(checkDBInterval):
		}
	}
	return fmt.Errorf("stores not ready: %w", lastErr)
}

func ping(ctx context.Context, cfg *config.Config) error {
	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	for _, check := range repos.Health {
		if err := check.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
