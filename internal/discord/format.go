package discord

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/catchbot/internal/domain"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

// formatCoins renders an amount with thousands separators
func formatCoins(amount int64) string {
	return printer.Sprintf("%d coins", amount)
}

func formatTier(tier domain.Tier) string {
	return titler.String(tier.String())
}

func formatEffect(item domain.Item) string {
	if boost, ok := item.Effect.RarityBoost(); ok {
		return printer.Sprintf("+%.0f%% rarity", boost*100)
	}
	if mult, ok := item.Effect.WorthMultiplier(); ok {
		return printer.Sprintf("×%.2f worth", mult)
	}
	return ""
}

func itemKind(item domain.Item) string {
	var parts []string
	if item.IsPassive {
		parts = append(parts, "passive")
	}
	if item.IsConsumable {
		parts = append(parts, "consumable")
	}
	if effect := formatEffect(item); effect != "" {
		parts = append(parts, effect)
	}
	return strings.Join(parts, ", ")
}

func tierColor(tier domain.Tier) int {
	if tier == domain.TierLegendary {
		return ColorLegendary
	}
	return ColorCatch
}
