package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the invalid request fields
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON encodes into a pooled buffer first so an encoding failure
// never leaves a half-written body
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgEncodeFailed, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgWriteFailed, "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to its status and message.
// Rate limiting sets Retry-After.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceError(err)
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "op", op, "error", err)
	} else {
		log.Info(LogMsgServiceRejected, "op", op, "status", status, "reason", err)
	}

	var limited *domain.RateLimitedError
	if errors.As(err, &limited) {
		w.Header().Set(headerRetryAfter, strconv.FormatInt(max(limited.RemainingSeconds, 1), 10))
	}
	respondError(w, r, status, message)
}

// mapServiceError converts domain errors to HTTP status codes and user messages
func mapServiceError(err error) (int, string) {
	var limited *domain.RateLimitedError
	switch {
	case errors.As(err, &limited):
		return http.StatusTooManyRequests, fmt.Sprintf(ErrMsgRateLimitedError, limited.RemainingSeconds)
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, fmt.Sprintf(ErrMsgRateLimitedError, 0)
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrRewardNotFound):
		return http.StatusNotFound, ErrMsgRewardNotFoundError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgResourceNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInsufficientInventory):
		return http.StatusBadRequest, ErrMsgNotEnoughItemsError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrNotConsumable):
		return http.StatusBadRequest, ErrMsgNotConsumableError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrEmptyRewardPool):
		return http.StatusServiceUnavailable, ErrMsgEmptyRewardPoolError
	case errors.Is(err, domain.ErrInfrastructure):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
