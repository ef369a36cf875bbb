package reward

import (
	"context"
	"testing"
	"time"

	"github.com/osse101/catchbot/internal/domain"
)

// stubRewardOps returns a fixed pool with no allocation per call
type stubRewardOps struct {
	pool []domain.Reward
}

func (s *stubRewardOps) GetRewardsByTier(ctx context.Context, tier domain.Tier) ([]domain.Reward, error) {
	return s.pool, nil
}

func (s *stubRewardOps) ClaimFirst(ctx context.Context, rewardID int, accountID string, at time.Time) (bool, error) {
	return false, nil
}

func BenchmarkApplyRarityBoost(b *testing.B) {
	base := domain.DefaultWeights()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ApplyRarityBoost(base, 0.35)
	}
}

func BenchmarkSelectTier(b *testing.B) {
	s := NewSelector(nil, nil)
	weights := s.Weights(0.2)
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.SelectTier(ctx, weights)
	}
}

func BenchmarkPickRewardInTier_LargePool(b *testing.B) {
	pool := make([]domain.Reward, 1000)
	for i := range pool {
		pool[i] = domain.Reward{ID: i + 1, Name: "fish", Worth: int64(i), Tier: domain.TierCommon}
	}
	ops := &stubRewardOps{pool: pool}
	s := NewSelector(nil, nil)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.PickRewardInTier(ctx, ops, domain.TierCommon); err != nil {
			b.Fatal(err)
		}
	}
}
