package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
	"github.com/osse101/catchbot/internal/utils"
	"github.com/osse101/catchbot/internal/validation"
)

// ErrInvalidCatalog marks semantic catalog errors the schema cannot express
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the seed file of item, listing and reward definitions
type Catalog struct {
	Version     string       `json:"version"`
	Description string       `json:"description,omitempty"`
	Items       []ItemDef    `json:"items"`
	Listings    []ListingDef `json:"listings"`
	Rewards     []RewardDef  `json:"rewards"`

	// Checksum is the sha256 of the loaded file
	Checksum string `json:"-"`
}

// EffectDef is the effect of an item definition
type EffectDef struct {
	Kind  domain.EffectKind `json:"kind"`
	Value float64           `json:"value"`
}

// ItemDef is one item definition
type ItemDef struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description,omitempty"`
	Effect      *EffectDef `json:"effect,omitempty"`
	Passive     bool       `json:"passive,omitempty"`
	Consumable  bool       `json:"consumable,omitempty"`
}

// ListingDef lists an item, referenced by slug or name, in the shop
type ListingDef struct {
	Item string `json:"item"`
	Cost int64  `json:"cost"`
}

// RewardDef is one catchable reward
type RewardDef struct {
	Name  string      `json:"name"`
	Tier  domain.Tier `json:"tier"`
	Worth int64       `json:"worth"`
}

// SyncResult counts the definitions written
type SyncResult struct {
	Items    int
	Listings int
	Rewards  int
}

// Loader handles loading, validating and seeding the catalog
type Loader interface {
	Load(path string) (*Catalog, error)
	Validate(catalog *Catalog) error
	Sync(ctx context.Context, catalog *Catalog, repo repository.Catalog) (*SyncResult, error)
}

type loader struct {
	schemaValidator validation.SchemaValidator
	schemaPath      string
}

// NewLoader creates a loader validating against SchemaPath
func NewLoader() Loader {
	return NewLoaderWithSchema(SchemaPath)
}

// NewLoaderWithSchema creates a loader validating against schemaPath
func NewLoaderWithSchema(schemaPath string) Loader {
	return &loader{
		schemaValidator: validation.NewSchemaValidator(),
		schemaPath:      schemaPath,
	}
}

// Load reads, schema-checks and decodes a catalog file
func (l *loader) Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, l.schemaPath); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailedFmt, path, err)
	}

	var catalog Catalog
	if err := utils.DecodeJSONStrict(data, &catalog); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, err)
	}
	sum := sha256.Sum256(data)
	catalog.Checksum = hex.EncodeToString(sum[:])
	return &catalog, nil
}

// Validate checks the rules the schema cannot express
func (l *loader) Validate(catalog *Catalog) error {
	if catalog == nil {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, ErrMsgCatalogNil)
	}

	refs := make(map[string]string, len(catalog.Items)*2)
	for i, def := range catalog.Items {
		if err := validateItem(i, def, refs); err != nil {
			return err
		}
	}

	listed := make(map[string]bool, len(catalog.Listings))
	for _, def := range catalog.Listings {
		name, ok := refs[def.Item]
		if !ok {
			return fmt.Errorf(ErrFmtUnknownListingItem, ErrInvalidCatalog, def.Item)
		}
		if listed[name] {
			return fmt.Errorf(ErrFmtDuplicateListing, ErrInvalidCatalog, name)
		}
		listed[name] = true
		if def.Cost < 0 {
			return fmt.Errorf(ErrFmtNegativeCost, ErrInvalidCatalog, def.Item)
		}
	}

	rewards := make(map[string]bool, len(catalog.Rewards))
	for i, def := range catalog.Rewards {
		if strings.TrimSpace(def.Name) == "" {
			return fmt.Errorf(ErrFmtEmptyName, ErrInvalidCatalog, kindReward, i)
		}
		if rewards[def.Name] {
			return fmt.Errorf(ErrFmtDuplicateReward, ErrInvalidCatalog, def.Name)
		}
		rewards[def.Name] = true
		if !def.Tier.Valid() {
			return fmt.Errorf(ErrFmtBadTier, ErrInvalidCatalog, def.Name, def.Tier)
		}
		if def.Worth < 0 {
			return fmt.Errorf(ErrFmtNegativeWorth, ErrInvalidCatalog, def.Name)
		}
	}
	return nil
}

// validateItem registers the item's name and slug in refs, mapping both to the name
func validateItem(index int, def ItemDef, refs map[string]string) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf(ErrFmtEmptyName, ErrInvalidCatalog, kindItem, index)
	}
	if _, taken := refs[def.Name]; taken {
		return fmt.Errorf(ErrFmtDuplicateItemName, ErrInvalidCatalog, def.Name)
	}
	refs[def.Name] = def.Name

	if def.Slug != "" && def.Slug != def.Name {
		if _, taken := refs[def.Slug]; taken {
			return fmt.Errorf(ErrFmtDuplicateSlug, ErrInvalidCatalog, def.Slug)
		}
		refs[def.Slug] = def.Name
	}

	if def.Passive && def.Consumable {
		return fmt.Errorf(ErrFmtPassiveConsumable, ErrInvalidCatalog, def.Name)
	}

	effect, err := def.effect()
	if err != nil {
		return fmt.Errorf(ErrFmtBadEffect, ErrInvalidCatalog, def.Name, err)
	}
	if effect.IsNone() {
		return nil
	}
	_, value := effect.Columns()
	if *value <= 0 {
		return fmt.Errorf(ErrFmtNonPositiveEffect, ErrInvalidCatalog, def.Name)
	}
	if boost, ok := effect.RarityBoost(); ok && boost > domain.MaxRarityBoost {
		return fmt.Errorf(ErrFmtRarityBoostTooHigh, ErrInvalidCatalog, def.Name, boost, domain.MaxRarityBoost)
	}
	return nil
}

func (d ItemDef) effect() (domain.Effect, error) {
	if d.Effect == nil {
		return domain.NoEffect(), nil
	}
	value := d.Effect.Value
	return domain.NewEffect(d.Effect.Kind, &value)
}

func (d ItemDef) toDomain() (domain.Item, error) {
	effect, err := d.effect()
	if err != nil {
		return domain.Item{}, err
	}
	return domain.Item{
		Name:         d.Name,
		Slug:         d.Slug,
		Description:  d.Description,
		Effect:       effect,
		IsPassive:    d.Passive,
		IsConsumable: d.Consumable,
	}, nil
}

// Sync upserts every definition by natural key. It is idempotent and never
// touches balances, inventories or first claims.
func (l *loader) Sync(ctx context.Context, catalog *Catalog, repo repository.Catalog) (*SyncResult, error) {
	if err := l.Validate(catalog); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	result := &SyncResult{}
	ids := make(map[string]int, len(catalog.Items)*2)
	for _, def := range catalog.Items {
		item, err := def.toDomain()
		if err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertItemFailedFmt, def.Name, err)
		}
		id, err := repo.UpsertItem(ctx, item)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertItemFailedFmt, def.Name, err)
		}
		ids[def.Name] = id
		if def.Slug != "" {
			ids[def.Slug] = id
		}
		result.Items++
	}

	for _, def := range catalog.Listings {
		if _, err := repo.UpsertListing(ctx, ids[def.Item], def.Cost); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertListingFailedFmt, def.Item, err)
		}
		result.Listings++
	}

	stocked := make(map[domain.Tier]bool, len(domain.Tiers))
	for _, def := range catalog.Rewards {
		if _, err := repo.UpsertReward(ctx, domain.Reward{Name: def.Name, Tier: def.Tier, Worth: def.Worth}); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertRewardFailedFmt, def.Name, err)
		}
		stocked[def.Tier] = true
		result.Rewards++
	}
	for _, tier := range domain.Tiers {
		if !stocked[tier] {
			log.Warn(LogMsgTierWithoutReward, "tier", tier.String())
		}
	}

	log.Info(LogMsgSyncCompleted, "items", result.Items, "listings", result.Listings,
		"rewards", result.Rewards, "checksum", catalog.Checksum)
	return result, nil
}

// LoadAndSync is the startup path: load, validate, seed
func LoadAndSync(ctx context.Context, l Loader, path string, repo repository.Catalog) (*SyncResult, error) {
	catalog, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgCatalogLoaded, "path", path, "version", catalog.Version,
		"items", len(catalog.Items), "rewards", len(catalog.Rewards))
	return l.Sync(ctx, catalog, repo)
}
