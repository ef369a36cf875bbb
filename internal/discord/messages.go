package discord

import (
	"errors"
	"time"

	"github.com/osse101/catchbot/internal/domain"
)

// Friendly message constants for Discord responses
const (
	// Economy
	MsgInsufficientFunds = "⚠️ **Not Enough Coins!**\nYou have %s but need %s."
	MsgInvalidQuantity   = "🔢 **Invalid Quantity**\nPick a quantity between 1 and the shop limit."

	// Items & Inventory
	MsgListingNotFound       = "❓ **Not In The Shop**\nCheck `/shop` for what is on sale."
	MsgItemNotFound          = "❓ **Item Not Found**\nMaybe check the spelling?"
	MsgInsufficientInventory = "🎒 **Not Enough Items**\nYou don't have enough of that item."
	MsgNotConsumable         = "🚫 **Can't Use That**\nOnly consumable items can be used."

	// Account
	MsgAccountNotFound = "👤 **No Account Yet**\nTry `/catch` to get started."

	// Catch
	MsgRateLimited     = "⏳ **Whoa there!**\nThe water needs a rest. Try again in **%s**."
	MsgEmptyRewardPool = "🌊 **Nothing Biting**\nThere is nothing to catch in that tier right now."

	MsgGenericError = "❌ Something went wrong."
)

// formatFriendlyError turns a core error into a player-facing message.
// Infrastructure errors never leak their text.
func formatFriendlyError(err error) string {
	var funds *domain.InsufficientFundsError
	var limited *domain.RateLimitedError

	switch {
	case errors.As(err, &funds):
		return printer.Sprintf(MsgInsufficientFunds, formatCoins(funds.Balance), formatCoins(funds.Required))
	case errors.As(err, &limited):
		return printer.Sprintf(MsgRateLimited, formatWait(limited.RemainingSeconds))
	case errors.Is(err, domain.ErrListingNotFound):
		return MsgListingNotFound
	case errors.Is(err, domain.ErrAccountNotFound):
		return MsgAccountNotFound
	case errors.Is(err, domain.ErrNotFound):
		return MsgItemNotFound
	case errors.Is(err, domain.ErrInsufficientInventory):
		return MsgInsufficientInventory
	case errors.Is(err, domain.ErrNotConsumable):
		return MsgNotConsumable
	case errors.Is(err, domain.ErrInvalidQuantity):
		return MsgInvalidQuantity
	case errors.Is(err, domain.ErrEmptyRewardPool):
		return MsgEmptyRewardPool
	default:
		return MsgGenericError
	}
}

func formatWait(seconds int64) string {
	if seconds < 1 {
		seconds = 1
	}
	return (time.Duration(seconds) * time.Second).String()
}
