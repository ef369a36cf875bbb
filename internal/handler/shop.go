package handler

import (
	"net/http"

	"github.com/osse101/catchbot/internal/economy"
	"github.com/osse101/catchbot/internal/logger"
)

// ListingResponse is one shop listing
type ListingResponse struct {
	ListingID    int    `json:"listing_id"`
	ItemID       int    `json:"item_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	Description  string `json:"description,omitempty"`
	Effect       string `json:"effect"`
	IsPassive    bool   `json:"is_passive"`
	IsConsumable bool   `json:"is_consumable"`
	Cost         int64  `json:"cost"`
}

// PurchaseRequest buys quantity units of a listing, by id or item slug
type PurchaseRequest struct {
	AccountID string `json:"account_id" validate:"required,account_id"`
	Listing   string `json:"listing" validate:"required,max=100"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// PurchaseResponse summarizes a committed purchase
type PurchaseResponse struct {
	ListingID      int     `json:"listing_id"`
	Item           string  `json:"item"`
	Quantity       int     `json:"quantity"`
	TotalCost      int64   `json:"total_cost"`
	Balance        int64   `json:"balance"`
	InventoryCount int     `json:"inventory_count"`
	RecordIDs      []int64 `json:"record_ids"`
}

// HandleGetShopListings lists everything for sale
// @Summary Get shop listings
// @Tags shop
// @Produce json
// @Success 200 {array} ListingResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/shop [get]
func HandleGetShopListings(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listings, err := svc.GetShopListings(r.Context())
		if err != nil {
			respondServiceError(w, r, "get_shop_listings", err)
			return
		}

		out := make([]ListingResponse, 0, len(listings))
		for _, l := range listings {
			out = append(out, ListingResponse{
				ListingID:    l.ID,
				ItemID:       l.Item.ID,
				Name:         l.Item.Name,
				Slug:         l.Item.Slug,
				Description:  l.Item.Description,
				Effect:       l.Item.EffectLabel(),
				IsPassive:    l.Item.IsPassive,
				IsConsumable: l.Item.IsConsumable,
				Cost:         l.Cost,
			})
		}
		respondJSON(w, r, http.StatusOK, out)
	}
}

// HandlePurchase buys from the shop
// @Summary Purchase
// @Description Buy quantity units of a listing, by listing id or item slug. All units or none.
// @Tags shop
// @Accept json
// @Produce json
// @Param request body PurchaseRequest true "Purchase request"
// @Success 201 {object} PurchaseResponse "Purchase committed"
// @Failure 400 {object} ErrorResponse "Invalid request or insufficient funds"
// @Failure 404 {object} ErrorResponse "Account or listing not found"
// @Security ApiKeyAuth
// @Router /api/v1/shop/purchase [post]
func HandlePurchase(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase"); err != nil {
			return
		}

		result, err := svc.Purchase(r.Context(), req.AccountID, req.Listing, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "purchase", err)
			return
		}

		ids := make([]int64, len(result.Records))
		for i, rec := range result.Records {
			ids[i] = rec.ID
		}
		logger.FromContext(r.Context()).Info(LogMsgPurchaseCompleted, "account_id", req.AccountID,
			"listing_id", result.Listing.ID, "quantity", result.Quantity)
		respondJSON(w, r, http.StatusCreated, PurchaseResponse{
			ListingID:      result.Listing.ID,
			Item:           result.Listing.Item.Name,
			Quantity:       result.Quantity,
			TotalCost:      result.TotalCost,
			Balance:        result.Balance,
			InventoryCount: result.InventoryCount,
			RecordIDs:      ids,
		})
	}
}
