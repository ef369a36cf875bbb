package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/osse101/catchbot/internal/concurrency"
	"github.com/osse101/catchbot/internal/database"
	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

var (
	_ repository.Ledger        = (*LedgerRepository)(nil)
	_ repository.Economy       = (*EconomyRepository)(nil)
	_ repository.Effects       = (*EffectsRepository)(nil)
	_ repository.Catch         = (*CatchRepository)(nil)
	_ repository.Attempts      = (*AttemptRepository)(nil)
	_ repository.ScopeSettings = (*AttemptRepository)(nil)
	_ repository.Catalog       = (*CatalogRepository)(nil)
	_ repository.Health        = (*LedgerRepository)(nil)
)

// Repositories bundles every GORM repository over one connection
type Repositories struct {
	DB       *gorm.DB
	Ledger   *LedgerRepository
	Economy  *EconomyRepository
	Effects  *EffectsRepository
	Catch    *CatchRepository
	Attempts *AttemptRepository
	Catalog  *CatalogRepository
}

// New returns every repository backed by db. They share one lock manager.
func New(db *gorm.DB) *Repositories {
	s := store{queries: queries{db: db}, locks: concurrency.NewLockManager()}
	return &Repositories{
		DB:       db,
		Ledger:   &LedgerRepository{store: s},
		Economy:  &EconomyRepository{store: s},
		Effects:  &EffectsRepository{store: s},
		Catch:    &CatchRepository{store: s},
		Attempts: &AttemptRepository{store: s},
		Catalog:  &CatalogRepository{store: s},
	}
}

// AutoMigrate creates or updates the schema from the models. PostgreSQL
// deployments use the goose migrations instead.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	return domain.Infrastructure(opMigrate, db.WithContext(ctx).AutoMigrate(Models()...))
}

// OpenSQLite opens a migrated SQLite database at path
func OpenSQLite(ctx context.Context, path string) (*Repositories, error) {
	db, err := database.OpenGorm(database.GormConfig{Driver: database.DriverSQLite, DSN: path})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(ctx, db); err != nil {
		return nil, err
	}
	return New(db), nil
}

// Close releases the underlying connection pool
func (r *Repositories) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
