package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/ratelimit"
)

// UpdateScopeRequest sets a guild's attempt limit and window
type UpdateScopeRequest struct {
	AttemptLimit  int `json:"attempt_limit" validate:"required,min=1,max=100000"`
	WindowSeconds int `json:"window_seconds" validate:"required,min=1,max=31536000"`
}

// HandleUpdateScopeSettings changes the rate-limit settings of a guild scope
// @Summary Update scope settings
// @Tags admin
// @Accept json
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param request body UpdateScopeRequest true "New limit and window"
// @Success 200 {object} domain.ScopeSettings
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Security ApiKeyAuth
// @Router /api/v1/admin/scopes/{guildID} [put]
func HandleUpdateScopeSettings(limiter ratelimit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := chi.URLParam(r, ParamGuildID)
		if err := GetValidator().ValidateVar(guildID, "required,max=64,alphanum"); err != nil {
			respondError(w, r, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		var req UpdateScopeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update scope settings"); err != nil {
			return
		}

		settings, err := limiter.UpdateSettings(r.Context(), domain.GuildScope(guildID), req.AttemptLimit, req.WindowSeconds)
		if err != nil {
			respondServiceError(w, r, "update_scope_settings", err)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgScopeSettingsSaved, "scope", settings.ScopeKey)
		respondJSON(w, r, http.StatusOK, settings)
	}
}

// HandleGetScopeSettings returns the settings in force for a guild scope
// @Summary Get scope settings
// @Tags admin
// @Produce json
// @Param guildID path string true "Guild ID"
// @Success 200 {object} domain.ScopeSettings
// @Failure 400 {object} ErrorResponse "Invalid guild id"
// @Security ApiKeyAuth
// @Router /api/v1/admin/scopes/{guildID} [get]
func HandleGetScopeSettings(limiter ratelimit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := chi.URLParam(r, ParamGuildID)
		if err := GetValidator().ValidateVar(guildID, "required,max=64,alphanum"); err != nil {
			respondError(w, r, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		settings, err := limiter.GetSettings(r.Context(), domain.GuildScope(guildID))
		if err != nil {
			respondServiceError(w, r, "get_scope_settings", err)
			return
		}
		respondJSON(w, r, http.StatusOK, settings)
	}
}
