package main

import (
	"context"

	"github.com/osse101/catchbot/internal/catalog"
	"github.com/osse101/catchbot/internal/config"
)

// CheckCatalogCommand validates a catalog file without touching a store
type CheckCatalogCommand struct{}

func (c *CheckCatalogCommand) Name() string {
	return "check-catalog"
}

func (c *CheckCatalogCommand) Description() string {
	return "Validate the catalog JSON against its schema and rules"
}

func (c *CheckCatalogCommand) Run(ctx context.Context, args []string) error {
	path := config.ConfigPathCatalog
	if len(args) > 0 {
		path = args[0]
	}
	PrintHeader("Checking " + path)

	loader := catalog.NewLoader()
	cat, err := loader.Load(path)
	if err != nil {
		return err
	}
	if err := loader.Validate(cat); err != nil {
		return err
	}

	PrintSuccess("%s v%s: %d items, %d listings, %d rewards (sha256 %s)",
		appName, cat.Version, len(cat.Items), len(cat.Listings), len(cat.Rewards), cat.Checksum[:12])
	return nil
}
