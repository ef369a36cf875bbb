package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/catchbot/internal/catalog"
	"github.com/osse101/catchbot/internal/catch"
	"github.com/osse101/catchbot/internal/config"
	"github.com/osse101/catchbot/internal/economy"
	"github.com/osse101/catchbot/internal/effects"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/ratelimit"
	"github.com/osse101/catchbot/internal/reward"
)

// Services are the core operations shared by the HTTP API and the Discord bot
type Services struct {
	Economy economy.Service
	Catch   catch.Service
	Limiter ratelimit.Service
	Effects effects.Service
}

// InitializeServices builds the core services over repos
func InitializeServices(cfg *config.Config, repos *Repositories) Services {
	econCfg := economy.DefaultConfig()
	econCfg.MaxPurchaseQuantity = cfg.MaxPurchaseQuantity
	econCfg.ListingCacheTTL = cfg.ListingCacheTTL

	limiter := ratelimit.NewService(
		repos.Attempts,
		ratelimit.NewSettingsResolver(repos.ScopeSettings, ratelimit.Limits{
			AttemptLimit:  cfg.DefaultAttemptLimit,
			WindowSeconds: cfg.DefaultWindowSeconds,
		}),
	)

	return Services{
		Economy: economy.NewService(repos.Economy, econCfg),
		Catch:   catch.NewService(repos.Catch, limiter, reward.NewSelector(nil, nil), catch.Config{FirstClaimBonus: cfg.FirstClaimBonus}),
		Limiter: limiter,
		Effects: effects.NewService(repos.Effects),
	}
}

// SyncCatalog loads, validates and upserts the catalog, then drops any cached
// listings so the shop reflects the new prices
func SyncCatalog(ctx context.Context, cfg *config.Config, repos *Repositories, svc Services) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSyncingCatalog, "path", cfg.CatalogPath)

	result, err := catalog.LoadAndSync(ctx, catalog.NewLoader(), cfg.CatalogPath, repos.Catalog)
	if err != nil {
		return fmt.Errorf(ErrMsgSyncCatalogFailed, cfg.CatalogPath, err)
	}
	svc.Economy.InvalidateListings(ctx)

	log.Info(LogMsgCatalogSynced, "items", result.Items, "listings", result.Listings, "rewards", result.Rewards)
	return nil
}
