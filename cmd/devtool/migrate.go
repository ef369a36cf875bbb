package main

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/osse101/catchbot/internal/config"
	"github.com/osse101/catchbot/internal/database"
)

// MigrateCommand drives the embedded goose migrations against PostgreSQL.
// SQLite stores are migrated by GORM at startup.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, create)"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, create")
	}
	subcmd := args[0]

	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}
		if err := goose.Create(nil, migrateDir, args[1], "sql"); err != nil {
			return err
		}
		PrintSuccess("Created migration %s", args[1])
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBDriver != config.DriverPostgres {
		return fmt.Errorf("migrations apply to %s only, DB_DRIVER is %q", config.DriverPostgres, cfg.DBDriver)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch subcmd {
	case "up":
		PrintHeader("Applying migrations")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Database is up to date")
	case "down":
		PrintHeader("Rolling back the latest migration")
		if err := database.Rollback(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Rolled back")
	case "status":
		return database.MigrationStatus(ctx, pool)
	default:
		return fmt.Errorf("unknown subcommand %q", subcmd)
	}
	return nil
}
