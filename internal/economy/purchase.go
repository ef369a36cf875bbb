package economy

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/ledger"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/metrics"
	"github.com/osse101/catchbot/internal/repository"
)

// Purchase buys quantity units of a listing. The debit, the purchase records
// and the inventory increment commit together or not at all.
func (s *service) Purchase(ctx context.Context, accountID, listingRef string, quantity int) (result *PurchaseResult, err error) {
	defer func() { metrics.RecordFailure(metricOpPurchase, err) }()

	ctx = logger.WithAccount(ctx, accountID)
	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchaseCalled, "listing", listingRef, "quantity", quantity)

	// 1. Validate request
	if err := s.validateQuantity(quantity); err != nil {
		return nil, err
	}

	// 2. Resolve listing
	listing, err := s.resolveListing(ctx, listingRef)
	if err != nil {
		return nil, err
	}

	// 3. Compute cost
	totalCost, err := computeTotalCost(listing.Cost, quantity)
	if err != nil {
		return nil, err
	}

	// 4. Begin transaction
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// 5. Debit
	balance, err := ledger.Debit(ctx, tx, accountID, totalCost)
	if err != nil {
		log.Info(LogMsgPurchaseRejected, "listing_id", listing.ID, "reason", err)
		return nil, fmt.Errorf(ErrMsgDebitFailed, err)
	}

	// 6. Audit rows, one per unit
	purchasedAt := s.now()
	records := make([]domain.PurchaseRecord, quantity)
	for i := range records {
		records[i] = domain.PurchaseRecord{
			AccountID:   accountID,
			ItemID:      listing.Item.ID,
			ListingID:   listing.ID,
			PurchasedAt: purchasedAt,
		}
	}
	records, err = tx.InsertPurchaseRecords(ctx, records)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRecordPurchaseFailed, err)
	}

	// 7. Inventory
	count, err := ledger.UpsertInventory(ctx, tx, accountID, listing.Item.ID, quantity)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateInventoryFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgItemPurchased, "item", listing.Item.Name, "quantity", quantity, "total_cost", totalCost)
	metrics.PurchasesTotal.Inc()
	metrics.ItemsBought.WithLabelValues(listing.Item.Slug).Add(float64(quantity))
	metrics.MoneySpent.Add(float64(totalCost))
	return &PurchaseResult{
		Listing:        *listing,
		Quantity:       quantity,
		TotalCost:      totalCost,
		Balance:        balance,
		InventoryCount: count,
		Records:        records,
	}, nil
}

func (s *service) validateQuantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf(ErrMsgInvalidQuantityFmt, quantity, domain.ErrInvalidQuantity)
	}
	if quantity > s.config.MaxPurchaseQuantity {
		return fmt.Errorf(ErrMsgQuantityExceedsMaxFmt, quantity, s.config.MaxPurchaseQuantity, domain.ErrInvalidQuantity)
	}
	return nil
}

func computeTotalCost(cost int64, quantity int) (int64, error) {
	if cost > 0 && int64(quantity) > math.MaxInt64/cost {
		return 0, fmt.Errorf(ErrMsgCostOverflowFmt, cost, quantity, domain.ErrInvalidQuantity)
	}
	return cost * int64(quantity), nil
}

// resolveListing accepts a numeric listing id or an item slug
func (s *service) resolveListing(ctx context.Context, ref string) (*domain.Listing, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf(ErrMsgEmptyListingRef, domain.ErrInvalidInput)
	}

	var key string
	id, convErr := strconv.Atoi(ref)
	if convErr == nil {
		key = idKey(id)
	} else {
		key = slugKey(ref)
	}
	if listing, ok := s.cache.get(key); ok {
		logger.FromContext(ctx).Debug(LogMsgListingCacheHit, "key", key)
		return listing, nil
	}

	var listing *domain.Listing
	var err error
	if convErr == nil {
		listing, err = s.repo.GetListingByID(ctx, id)
	} else {
		listing, err = s.repo.GetListingBySlug(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgResolveListingFailedFmt, ref, err)
	}
	s.cache.put(*listing)
	return listing, nil
}
