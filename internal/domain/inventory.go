package domain

import "time"

// InventoryEntry is a held item. Rows only exist while Count > 0.
type InventoryEntry struct {
	AccountID string `json:"account_id"`
	Item      Item   `json:"item"`
	Count     int    `json:"count"`
}

// Listing is a shop offer for one item.
type Listing struct {
	ID   int   `json:"listing_id"`
	Item Item  `json:"item"`
	Cost int64 `json:"cost"`
}

// PurchaseRecord is one audit row per unit purchased. Never mutated.
type PurchaseRecord struct {
	ID          int64     `json:"purchase_id"`
	AccountID   string    `json:"account_id"`
	ItemID      int       `json:"item_id"`
	ListingID   int       `json:"listing_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}
