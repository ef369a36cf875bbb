package handler

import (
	"net/http"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/economy"
)

// EnsureAccountRequest creates an account if it does not exist
type EnsureAccountRequest struct {
	AccountID string `json:"account_id" validate:"required,account_id"`
}

// BalanceResponse is the balance of one account
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
}

// InventoryItem is one held item
type InventoryItem struct {
	ItemID       int    `json:"item_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	Effect       string `json:"effect"`
	IsPassive    bool   `json:"is_passive"`
	IsConsumable bool   `json:"is_consumable"`
	Count        int    `json:"count"`
}

// InventoryResponse lists held items
type InventoryResponse struct {
	AccountID string          `json:"account_id"`
	Items     []InventoryItem `json:"items"`
}

// PurchaseHistoryResponse lists purchases, newest first
type PurchaseHistoryResponse struct {
	AccountID string                  `json:"account_id"`
	Purchases []domain.PurchaseRecord `json:"purchases"`
}

// HandleEnsureAccount creates the account with a zero balance, or returns it
// @Summary Ensure account
// @Description Create the account with a zero balance if it does not exist
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body EnsureAccountRequest true "Account to ensure"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ErrorResponse "Invalid account id"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/accounts [post]
func HandleEnsureAccount(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EnsureAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Ensure account"); err != nil {
			return
		}

		account, err := svc.EnsureAccount(r.Context(), req.AccountID)
		if err != nil {
			respondServiceError(w, r, "ensure_account", err)
			return
		}
		respondJSON(w, r, http.StatusOK, account)
	}
}

// HandleGetBalance returns the current balance
// @Summary Get balance
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} BalanceResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security ApiKeyAuth
// @Router /api/v1/accounts/{accountID}/balance [get]
func HandleGetBalance(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDParam(r, w)
		if !ok {
			return
		}

		balance, err := svc.GetAccountBalance(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "get_balance", err)
			return
		}
		respondJSON(w, r, http.StatusOK, BalanceResponse{AccountID: accountID, Balance: balance})
	}
}

// HandleGetInventory lists held items
// @Summary Get inventory
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} InventoryResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security ApiKeyAuth
// @Router /api/v1/accounts/{accountID}/inventory [get]
func HandleGetInventory(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDParam(r, w)
		if !ok {
			return
		}

		entries, err := svc.GetInventory(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "get_inventory", err)
			return
		}

		items := make([]InventoryItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, InventoryItem{
				ItemID:       e.Item.ID,
				Name:         e.Item.Name,
				Slug:         e.Item.Slug,
				Effect:       e.Item.EffectLabel(),
				IsPassive:    e.Item.IsPassive,
				IsConsumable: e.Item.IsConsumable,
				Count:        e.Count,
			})
		}
		respondJSON(w, r, http.StatusOK, InventoryResponse{AccountID: accountID, Items: items})
	}
}

// HandleGetPurchaseHistory lists purchases, newest first
// @Summary Get purchase history
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Param limit query int false "Maximum records to return"
// @Success 200 {object} PurchaseHistoryResponse
// @Failure 400 {object} ErrorResponse "Invalid limit"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security ApiKeyAuth
// @Router /api/v1/accounts/{accountID}/purchases [get]
func HandleGetPurchaseHistory(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDParam(r, w)
		if !ok {
			return
		}
		limit, ok := GetOptionalIntQueryParam(r, w, QueryLimit, 0)
		if !ok {
			return
		}

		records, err := svc.GetPurchaseHistory(r.Context(), accountID, limit)
		if err != nil {
			respondServiceError(w, r, "get_purchase_history", err)
			return
		}
		if records == nil {
			records = []domain.PurchaseRecord{}
		}
		respondJSON(w, r, http.StatusOK, PurchaseHistoryResponse{AccountID: accountID, Purchases: records})
	}
}
