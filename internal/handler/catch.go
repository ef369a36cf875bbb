package handler

import (
	"net/http"

	"github.com/osse101/catchbot/internal/catch"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/ratelimit"
)

// CatchRequest attempts a catch. An empty guild id is the direct-message scope.
type CatchRequest struct {
	AccountID string `json:"account_id" validate:"required,account_id"`
	GuildID   string `json:"guild_id" validate:"omitempty,max=64,alphanum"`
}

// CatchResponse describes a committed catch
type CatchResponse struct {
	RewardID     int                `json:"reward_id"`
	Reward       string             `json:"reward"`
	Tier         string             `json:"tier"`
	Worth        int64              `json:"worth"`
	Bonus        int64              `json:"bonus"`
	FirstClaim   bool               `json:"first_claim"`
	Balance      int64              `json:"balance"`
	Weights      map[string]float64 `json:"weights"`
	ConsumedItem string             `json:"consumed_item,omitempty"`
}

// HandleAttemptReward runs one rate-limited catch
// @Summary Attempt a catch
// @Description Draw one reward for the account, counted against the scope's rate limit
// @Tags catch
// @Accept json
// @Produce json
// @Param request body CatchRequest true "Catch request"
// @Success 201 {object} CatchResponse "Reward caught"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 503 {object} ErrorResponse "Reward pool empty for the drawn tier"
// @Security ApiKeyAuth
// @Router /api/v1/catch [post]
func HandleAttemptReward(svc catch.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CatchRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Catch"); err != nil {
			return
		}

		result, err := svc.AttemptReward(r.Context(), req.AccountID, scopeOf(req.GuildID))
		if err != nil {
			respondServiceError(w, r, "catch", err)
			return
		}

		weights := make(map[string]float64, len(result.Weights))
		for tier, weight := range result.Weights {
			weights[tier.String()] = weight
		}
		resp := CatchResponse{
			RewardID:   result.Reward.ID,
			Reward:     result.Reward.Name,
			Tier:       result.Tier.String(),
			Worth:      result.Worth,
			Bonus:      result.Bonus,
			FirstClaim: result.FirstClaim,
			Balance:    result.Balance,
			Weights:    weights,
		}
		if result.ConsumedItem != nil {
			resp.ConsumedItem = result.ConsumedItem.Name
		}
		logger.FromContext(r.Context()).Info(LogMsgCatchCompleted, "account_id", req.AccountID, "tier", resp.Tier)
		respondJSON(w, r, http.StatusCreated, resp)
	}
}

// HandleGetCatchStatus reports the caller's rate-limit status without consuming a slot
// @Summary Get catch status
// @Tags catch
// @Produce json
// @Param account_id query string true "Account ID"
// @Param guild_id query string false "Guild ID; empty for direct messages"
// @Success 200 {object} ratelimit.Status
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Security ApiKeyAuth
// @Router /api/v1/catch/status [get]
func HandleGetCatchStatus(limiter ratelimit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetQueryParam(r, w, QueryAccountID)
		if !ok {
			return
		}
		if !IsValidAccountID(accountID) {
			respondError(w, r, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}
		guildID := r.URL.Query().Get(QueryGuildID)
		if guildID != "" {
			if err := GetValidator().ValidateVar(guildID, "max=64,alphanum"); err != nil {
				respondError(w, r, http.StatusBadRequest, ErrMsgInvalidInputError)
				return
			}
		}

		status, err := limiter.CheckAllowed(r.Context(), accountID, scopeOf(guildID))
		if err != nil {
			respondServiceError(w, r, "catch_status", err)
			return
		}
		respondJSON(w, r, http.StatusOK, status)
	}
}
