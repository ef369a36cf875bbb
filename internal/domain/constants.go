package domain

// Transaction limits
const (
	// MaxPurchaseQuantity is the fallback cap on units bought in one purchase
	// when configuration does not override it.
	MaxPurchaseQuantity = 100

	// MaxPurchaseRecordsPerQuery bounds purchase history reads.
	MaxPurchaseRecordsPerQuery = 200
)

// Reward tuning
const (
	// MaxRarityBoost caps the combined rarity boost ratio applied to a draw.
	MaxRarityBoost = 0.5

	// WeightTotal is the sum every normalized weight table adds up to.
	WeightTotal = 100.0

	// DefaultFirstClaimBonus is credited on top of worth to the first catcher of a reward.
	DefaultFirstClaimBonus = 50
)
