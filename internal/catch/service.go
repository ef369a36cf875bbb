package catch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/effects"
	"github.com/osse101/catchbot/internal/ledger"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/metrics"
	"github.com/osse101/catchbot/internal/ratelimit"
	"github.com/osse101/catchbot/internal/repository"
	"github.com/osse101/catchbot/internal/reward"
	"github.com/osse101/catchbot/internal/utils"
)

// Result describes a committed catch
type Result struct {
	Reward       domain.Reward      `json:"reward"`
	Tier         domain.Tier        `json:"tier"`
	Worth        int64              `json:"worth"`
	Bonus        int64              `json:"bonus"`
	FirstClaim   bool               `json:"first_claim"`
	Balance      int64              `json:"balance"`
	Weights      domain.WeightTable `json:"weights"`
	ConsumedItem *domain.Item       `json:"consumed_item,omitempty"`
}

// Service defines the interface for reward catches
type Service interface {
	// AttemptReward draws and settles one reward for the account in scope.
	// Rejected attempts (rate limit, empty pool, failures) are not counted.
	AttemptReward(ctx context.Context, accountID string, scope domain.Scope) (*Result, error)

	GetCatchHistory(ctx context.Context, accountID string, limit int) ([]domain.CatchRecord, error)
}

// Config tunes the catch service
type Config struct {
	FirstClaimBonus int64
}

// DefaultConfig returns the configuration used when none is supplied
func DefaultConfig() Config {
	return Config{FirstClaimBonus: domain.DefaultFirstClaimBonus}
}

type service struct {
	repo     repository.Catch
	limiter  ratelimit.Service
	selector *reward.Selector
	config   Config
	now      func() time.Time
}

// NewService creates a new catch service
func NewService(repo repository.Catch, limiter ratelimit.Service, selector *reward.Selector, config Config) Service {
	if selector == nil {
		selector = reward.NewSelector(nil, nil)
	}
	if config.FirstClaimBonus < 0 {
		config.FirstClaimBonus = 0
	}
	return &service{
		repo:     repo,
		limiter:  limiter,
		selector: selector,
		config:   config,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) AttemptReward(ctx context.Context, accountID string, scope domain.Scope) (*Result, error) {
	ctx = logger.WithAccount(ctx, accountID)
	log := logger.FromContext(ctx)
	log.Info(LogMsgAttemptRewardCalled, "scope", scope.BucketKey())

	if strings.TrimSpace(accountID) == "" {
		return nil, fmt.Errorf(ErrMsgEmptyAccountID, domain.ErrInvalidInput)
	}
	if _, err := s.repo.GetAccount(ctx, accountID); err != nil {
		metrics.RecordFailure(metricOpCatch, err)
		return nil, fmt.Errorf(ErrMsgGetAccountFailed, err)
	}

	adm, err := s.limiter.Admit(ctx, accountID, scope)
	if err != nil {
		return nil, s.fail(ctx, scope, err)
	}

	result, err := s.settle(ctx, adm, accountID, scope)
	if err != nil {
		return nil, s.fail(ctx, scope, err)
	}

	metrics.CatchesTotal.WithLabelValues(result.Tier.String()).Inc()
	metrics.MoneyEarned.Add(float64(result.Worth + result.Bonus))
	if result.FirstClaim {
		metrics.FirstClaims.Inc()
	}
	if result.ConsumedItem != nil {
		metrics.ItemsConsumed.WithLabelValues(result.ConsumedItem.Slug).Inc()
	}
	return result, nil
}

// fail logs and counts a rejected attempt
func (s *service) fail(ctx context.Context, scope domain.Scope, err error) error {
	log := logger.FromContext(ctx)
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		metrics.RateLimited.WithLabelValues(metrics.ScopeKind(scope)).Inc()
		log.Info(LogMsgCatchRateLimited, "scope", scope.BucketKey(), "reason", err)
	case errors.Is(err, domain.ErrEmptyRewardPool):
		log.Warn(LogMsgEmptyRewardPool, "error", err)
	case domain.IsBusinessError(err):
		log.Info(LogMsgCatchFailed, "reason", err)
	default:
		log.Error(LogMsgCatchFailed, "error", err)
	}
	metrics.RecordFailure(metricOpCatch, err)
	return err
}

// settle claims the attempt, runs the draw and pays out in one transaction.
// The attempt is spent only when that transaction commits.
func (s *service) settle(ctx context.Context, adm *ratelimit.Admission, accountID string, scope domain.Scope) (*Result, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	slot, err := s.limiter.Claim(ctx, adm, tx)
	if err != nil {
		return nil, err
	}
	defer slot.Release(ctx)

	// Boosts
	passive, err := effects.GetPassiveBoostsWith(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgPassiveBoostsFailed, err)
	}
	consumable, err := effects.GetBestConsumableRarityBoostWith(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgConsumableFailed, err)
	}

	boost := passive.RarityBoostSum
	var consumed *domain.Item
	if consumable != nil {
		if _, err := effects.ConsumeWith(ctx, tx, accountID, consumable.Item); err != nil {
			return nil, fmt.Errorf(ErrMsgConsumeFailed, consumable.Item.Name, err)
		}
		boost += consumable.Value
		item := consumable.Item
		consumed = &item
	}
	log.Debug(LogMsgBoostsResolved, "rarity_boost", boost,
		"worth_multiplier", passive.WorthMultiplierProduct)

	// Draw
	weights := s.selector.Weights(boost)
	tier := s.selector.SelectTier(ctx, weights)
	picked, err := s.selector.PickRewardInTier(ctx, tx, tier)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgPickRewardFailed, err)
	}

	// Payout
	worth := utils.RoundToInt64(float64(picked.Worth) * passive.WorthMultiplierProduct)
	if worth < 0 {
		worth = 0
	}
	caughtAt := s.now()
	firstClaim, err := reward.RecordFirstClaim(ctx, tx, picked.ID, accountID, caughtAt)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFirstClaimFailed, err)
	}
	var bonus int64
	if firstClaim {
		bonus = s.config.FirstClaimBonus
		picked.FirstClaimedBy = &accountID
		picked.FirstClaimedAt = &caughtAt
	}

	balance, err := s.payout(ctx, tx, accountID, worth+bonus)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreditFailed, err)
	}

	record := &domain.CatchRecord{
		AccountID:  accountID,
		RewardID:   picked.ID,
		Tier:       tier,
		Worth:      worth,
		FirstClaim: firstClaim,
		Bucket:     scope.BucketKey(),
		CaughtAt:   caughtAt,
	}
	if err := tx.InsertCatchRecord(ctx, record); err != nil {
		return nil, fmt.Errorf(ErrMsgRecordCatchFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	slot.Keep()

	log.Info(LogMsgRewardCaught, "reward", picked.Name, "tier", tier.String(),
		"worth", worth, "bonus", bonus, "first_claim", firstClaim)
	return &Result{
		Reward:       *picked,
		Tier:         tier,
		Worth:        worth,
		Bonus:        bonus,
		FirstClaim:   firstClaim,
		Balance:      balance,
		Weights:      weights,
		ConsumedItem: consumed,
	}, nil
}

// payout credits amount, or reads the balance when there is nothing to credit
func (s *service) payout(ctx context.Context, tx repository.CatchTx, accountID string, amount int64) (int64, error) {
	if amount > 0 {
		return ledger.Credit(ctx, tx, accountID, amount)
	}
	return ledger.GetBalance(ctx, tx, accountID)
}

func (s *service) GetCatchHistory(ctx context.Context, accountID string, limit int) ([]domain.CatchRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if _, err := s.repo.GetAccount(ctx, accountID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetAccountFailed, err)
	}
	records, err := s.repo.GetCatchHistory(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetHistoryFailed, err)
	}
	return records, nil
}
