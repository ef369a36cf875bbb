package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

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

// Repositories bundles every PostgreSQL repository over one pool
type Repositories struct {
	Ledger   *LedgerRepository
	Economy  *EconomyRepository
	Effects  *EffectsRepository
	Catch    *CatchRepository
	Attempts *AttemptRepository
	Catalog  *CatalogRepository
}

// NewRepositories creates every repository over pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Ledger:   NewLedgerRepository(pool),
		Economy:  NewEconomyRepository(pool),
		Effects:  NewEffectsRepository(pool),
		Catch:    NewCatchRepository(pool),
		Attempts: NewAttemptRepository(pool),
		Catalog:  NewCatalogRepository(pool),
	}
}
