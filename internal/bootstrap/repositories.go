package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/catchbot/internal/config"
	"github.com/osse101/catchbot/internal/database"
	"github.com/osse101/catchbot/internal/database/gormstore"
	"github.com/osse101/catchbot/internal/database/postgres"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/ratelimit"
	"github.com/osse101/catchbot/internal/repository"
)

// Repositories holds the storage backends the services are built on. The
// relational store is PostgreSQL (pgx or gorm) or SQLite (gorm); attempts may
// live in Redis instead.
type Repositories struct {
	Ledger        repository.Ledger
	Economy       repository.Economy
	Effects       repository.Effects
	Catch         repository.Catch
	Attempts      repository.Attempts
	ScopeSettings repository.ScopeSettings
	Catalog       repository.Catalog
	Health        []repository.Health

	closers []func() error
}

// InitializeRepositories opens the configured store, migrates it, and
// optionally swaps the attempt store for Redis
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpeningStore, "driver", cfg.DBDriver, "backend", cfg.DBBackend)

	var repos *Repositories
	var err error
	switch {
	case cfg.DBDriver == config.DriverPostgres && cfg.DBBackend == config.BackendGorm:
		repos, err = openGormPostgres(ctx, cfg)
	case cfg.DBDriver == config.DriverPostgres:
		repos, err = openPostgres(ctx, cfg)
	case cfg.DBDriver == config.DriverSQLite:
		repos, err = openSQLite(ctx, cfg)
	default:
		err = fmt.Errorf(ErrMsgUnsupportedDriver, cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimitBackend == config.BackendRedis {
		rdb, err := ratelimit.NewRedisClient(ctx, ratelimit.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			_ = repos.Close()
			return nil, fmt.Errorf(ErrMsgRedisFailed, err)
		}
		store := ratelimit.NewRedisStore(rdb).WithAttemptTTL(cfg.RetentionMaxAge)
		repos.Attempts = store
		repos.Health = append(repos.Health, store)
		repos.closers = append(repos.closers, rdb.Close)
		log.Info(LogMsgRedisRateLimiting, "addr", cfg.RedisAddr)
	}

	return repos, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenStoreFailed, cfg.DBDriver, err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf(ErrMsgMigrateFailed, cfg.DBDriver, err)
	}

	pg := postgres.NewRepositories(pool)
	return &Repositories{
		Ledger:        pg.Ledger,
		Economy:       pg.Economy,
		Effects:       pg.Effects,
		Catch:         pg.Catch,
		Attempts:      pg.Attempts,
		ScopeSettings: pg.Attempts,
		Catalog:       pg.Catalog,
		Health:        []repository.Health{pg.Ledger},
		closers:       []func() error{func() error { pool.Close(); return nil }},
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	db, err := database.OpenGorm(database.GormConfig{
		Driver:      database.DriverSQLite,
		DSN:         cfg.SQLitePath,
		MaxIdleTime: cfg.DBMaxConnIdleTime,
		MaxLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenStoreFailed, cfg.DBDriver, err)
	}

	g := gormstore.New(db)
	if err := gormstore.AutoMigrate(ctx, db); err != nil {
		_ = g.Close()
		return nil, fmt.Errorf(ErrMsgMigrateFailed, cfg.DBDriver, err)
	}
	return fromGorm(g), nil
}

// openGormPostgres runs the gorm repositories against PostgreSQL. The schema
// comes from the same goose migrations as the pgx backend.
func openGormPostgres(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	db, err := database.OpenGorm(database.GormConfig{
		Driver:      database.DriverPostgres,
		DSN:         cfg.GetDBConnString(),
		MaxConns:    cfg.DBMaxConns,
		MaxIdleTime: cfg.DBMaxConnIdleTime,
		MaxLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenStoreFailed, cfg.DBDriver, err)
	}

	g := gormstore.New(db)
	sqlDB, err := db.DB()
	if err == nil {
		err = database.MigrateDB(ctx, sqlDB)
	}
	if err != nil {
		_ = g.Close()
		return nil, fmt.Errorf(ErrMsgMigrateFailed, cfg.DBDriver, err)
	}
	return fromGorm(g), nil
}

func fromGorm(g *gormstore.Repositories) *Repositories {
	return &Repositories{
		Ledger:        g.Ledger,
		Economy:       g.Economy,
		Effects:       g.Effects,
		Catch:         g.Catch,
		Attempts:      g.Attempts,
		ScopeSettings: g.Attempts,
		Catalog:       g.Catalog,
		Health:        []repository.Health{g.Ledger},
		closers:       []func() error{g.Close},
	}
}

// Close releases every backend, newest first
func (r *Repositories) Close() error {
	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil
	return firstErr
}
