package gormstore

import "time"

// Account mirrors the accounts table.
type Account struct {
	AccountID string    `gorm:"primaryKey;size:64"`
	Balance   int64     `gorm:"not null;default:0;check:balance >= 0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Account) TableName() string { return "accounts" }

// Item mirrors the items table.
type Item struct {
	ItemID       int      `gorm:"primaryKey;autoIncrement"`
	ItemName     string   `gorm:"size:100;not null;uniqueIndex"`
	Slug         *string  `gorm:"size:100;uniqueIndex"`
	Description  string   `gorm:"not null;default:''"`
	EffectKind   string   `gorm:"size:32;not null;default:''"`
	EffectValue  *float64 `gorm:""`
	IsPassive    bool     `gorm:"not null;default:false"`
	IsConsumable bool     `gorm:"not null;default:false"`
}

func (Item) TableName() string { return "items" }

// ShopListing mirrors the shop_listings table.
type ShopListing struct {
	ListingID int   `gorm:"primaryKey;autoIncrement"`
	ItemID    int   `gorm:"not null;uniqueIndex"`
	Item      Item  `gorm:"belongsTo:true;foreignKey:ItemID;references:ItemID;constraint:OnDelete:CASCADE"`
	Cost      int64 `gorm:"not null;check:cost >= 0"`
}

func (ShopListing) TableName() string { return "shop_listings" }

// InventoryEntry mirrors the inventory_entries table. Rows exist only while Count > 0.
// Associations are tagged belongsTo: the parents carry a column of the same
// name, which gorm would otherwise read as has-one and constrain backwards.
type InventoryEntry struct {
	AccountID string  `gorm:"primaryKey;size:64"`
	ItemID    int     `gorm:"primaryKey"`
	Count     int     `gorm:"not null;check:count > 0"`
	Account   Account `gorm:"belongsTo:true;foreignKey:AccountID;references:AccountID"`
	Item      Item    `gorm:"belongsTo:true;foreignKey:ItemID;references:ItemID"`
}

func (InventoryEntry) TableName() string { return "inventory_entries" }

// PurchaseRecord mirrors the purchase_records table.
type PurchaseRecord struct {
	PurchaseID  int64       `gorm:"primaryKey;autoIncrement"`
	AccountID   string      `gorm:"size:64;not null;index:idx_purchase_records_account,priority:1"`
	ItemID      int         `gorm:"not null"`
	ListingID   int         `gorm:"not null"`
	PurchasedAt time.Time   `gorm:"not null;index:idx_purchase_records_account,priority:2"`
	Account     Account     `gorm:"belongsTo:true;foreignKey:AccountID;references:AccountID"`
	Item        Item        `gorm:"belongsTo:true;foreignKey:ItemID;references:ItemID"`
	Listing     ShopListing `gorm:"belongsTo:true;foreignKey:ListingID;references:ListingID"`
}

func (PurchaseRecord) TableName() string { return "purchase_records" }

// Reward mirrors the rewards table.
type Reward struct {
	RewardID       int        `gorm:"primaryKey;autoIncrement"`
	RewardName     string     `gorm:"size:100;not null;uniqueIndex"`
	Worth          int64      `gorm:"not null;check:worth >= 0"`
	Tier           int16      `gorm:"not null;index"`
	FirstClaimedBy *string    `gorm:"size:64"`
	FirstClaimedAt *time.Time `gorm:""`
	Claimer        *Account   `gorm:"belongsTo:true;foreignKey:FirstClaimedBy;references:AccountID"`
}

func (Reward) TableName() string { return "rewards" }

// CatchRecord mirrors the catch_records table.
type CatchRecord struct {
	CatchID    int64     `gorm:"primaryKey;autoIncrement"`
	AccountID  string    `gorm:"size:64;not null;index:idx_catch_records_account,priority:1"`
	RewardID   int       `gorm:"not null"`
	Tier       int16     `gorm:"not null"`
	Worth      int64     `gorm:"not null"`
	FirstClaim bool      `gorm:"not null;default:false"`
	Bucket     string    `gorm:"size:128;not null"`
	CaughtAt   time.Time `gorm:"not null;index:idx_catch_records_account,priority:2"`
	Account    Account   `gorm:"belongsTo:true;foreignKey:AccountID;references:AccountID"`
	Reward     Reward    `gorm:"belongsTo:true;foreignKey:RewardID;references:RewardID"`
}

func (CatchRecord) TableName() string { return "catch_records" }

// AttemptRecord mirrors the attempt_records table.
type AttemptRecord struct {
	AttemptID   int64     `gorm:"primaryKey;autoIncrement"`
	AccountID   string    `gorm:"size:64;not null;index:idx_attempt_records_window,priority:1"`
	Bucket      string    `gorm:"size:128;not null;index:idx_attempt_records_window,priority:2"`
	AttemptedAt time.Time `gorm:"not null;index:idx_attempt_records_window,priority:3;index:idx_attempt_records_attempted_at"`
}

func (AttemptRecord) TableName() string { return "attempt_records" }

// ScopeSetting mirrors the scope_settings table.
type ScopeSetting struct {
	ScopeKey      string `gorm:"primaryKey;size:128"`
	AttemptLimit  int    `gorm:"not null;check:attempt_limit >= 1"`
	WindowSeconds int    `gorm:"not null;check:window_seconds >= 1"`
}

func (ScopeSetting) TableName() string { return "scope_settings" }

// Models lists every model in dependency order for AutoMigrate.
func Models() []any {
	return []any{
		&Account{},
		&Item{},
		&ShopListing{},
		&InventoryEntry{},
		&PurchaseRecord{},
		&Reward{},
		&CatchRecord{},
		&AttemptRecord{},
		&ScopeSetting{},
	}
}
