package handler

import (
	"net/http"

	"github.com/osse101/catchbot/internal/effects"
	"github.com/osse101/catchbot/internal/logger"
)

// ConsumeRequest uses up one unit of a consumable item
type ConsumeRequest struct {
	AccountID string `json:"account_id" validate:"required,account_id"`
	ItemID    int    `json:"item_id" validate:"required,min=1"`
}

// ConsumeResponse reports the units left
type ConsumeResponse struct {
	ItemID    int `json:"item_id"`
	Remaining int `json:"remaining"`
}

// HandleConsumeItem removes one unit of a consumable
// @Summary Consume item
// @Tags items
// @Accept json
// @Produce json
// @Param request body ConsumeRequest true "Item to consume"
// @Success 200 {object} ConsumeResponse
// @Failure 400 {object} ErrorResponse "Not consumable or not held"
// @Failure 404 {object} ErrorResponse "Account or item not found"
// @Security ApiKeyAuth
// @Router /api/v1/items/consume [post]
func HandleConsumeItem(svc effects.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConsumeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Consume item"); err != nil {
			return
		}

		remaining, err := svc.Consume(r.Context(), req.AccountID, req.ItemID)
		if err != nil {
			respondServiceError(w, r, "consume", err)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgItemConsumed, "account_id", req.AccountID, "item_id", req.ItemID)
		respondJSON(w, r, http.StatusOK, ConsumeResponse{ItemID: req.ItemID, Remaining: remaining})
	}
}
