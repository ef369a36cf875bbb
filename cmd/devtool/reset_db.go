package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/catchbot/internal/config"
	"github.com/osse101/catchbot/internal/database"
)

const confirmYes = "yes"

// ResetDBCommand drops and recreates the PostgreSQL database, then migrates it
type ResetDBCommand struct{}

func (c *ResetDBCommand) Name() string {
	return "reset-db"
}

func (c *ResetDBCommand) Description() string {
	return "Drop, recreate and migrate the PostgreSQL database (pass 'yes' to confirm)"
}

func (c *ResetDBCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 || args[0] != confirmYes {
		return fmt.Errorf("refusing to reset without confirmation: %s reset-db %s", toolName, confirmYes)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBDriver != config.DriverPostgres {
		return fmt.Errorf("reset-db applies to %s only, DB_DRIVER is %q", config.DriverPostgres, cfg.DBDriver)
	}

	serverConn := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, serverConn)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	defer conn.Close(ctx)

	name := pgx.Identifier{cfg.DBName}.Sanitize()

	PrintInfo("Terminating connections to %s", cfg.DBName)
	_, err = conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, cfg.DBName)
	if err != nil {
		PrintError("Failed to terminate connections: %v", err)
	}

	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+name); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	PrintSuccess("Database %s recreated", cfg.DBName)

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	PrintSuccess("Database reset complete")
	return nil
}
