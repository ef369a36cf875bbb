package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/catchbot/internal/repository"
)

// EffectsRepository implements repository.Effects for PostgreSQL
type EffectsRepository struct {
	store
}

// NewEffectsRepository creates a new EffectsRepository
func NewEffectsRepository(pool *pgxpool.Pool) *EffectsRepository {
	return &EffectsRepository{store: newStore(pool)}
}

// BeginTx starts a new transaction
func (r *EffectsRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	return r.begin(ctx)
}
