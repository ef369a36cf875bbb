package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/catchbot/internal/domain"
)

// InventoryCommand lists the caller's items
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdInventory,
		Description: "View your inventory",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc Services) {
		handleEmbedResponse(ctx, s, i, func() (*discordgo.MessageEmbed, error) {
			accountID, err := accountFor(ctx, i, svc)
			if err != nil {
				return nil, err
			}
			entries, err := svc.Economy.GetInventory(ctx, accountID)
			if err != nil {
				return nil, err
			}
			if len(entries) == 0 {
				return createEmbed("🎒 Inventory", "Your inventory is empty.", ColorInfo), nil
			}

			var b strings.Builder
			for _, e := range entries {
				fmt.Fprintf(&b, "**%s** ×%d", e.Item.Name, e.Count)
				if kind := itemKind(e.Item); kind != "" {
					fmt.Fprintf(&b, " · _%s_", kind)
				}
				b.WriteString("\n")
			}
			return createEmbed("🎒 Inventory", b.String(), ColorInfo), nil
		})
	}

	return cmd, handler
}

// UseCommand consumes one unit of a held consumable
func UseCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdUse,
		Description: "Use one of your consumable items",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         OptItem,
				Description:  "Item to use",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc Services) {
		handleEmbedResponse(ctx, s, i, func() (*discordgo.MessageEmbed, error) {
			opt, ok := optionMap(i)[OptItem]
			if !ok {
				return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingItemOption)
			}

			accountID, err := accountFor(ctx, i, svc)
			if err != nil {
				return nil, err
			}
			entries, err := svc.Economy.GetInventory(ctx, accountID)
			if err != nil {
				return nil, err
			}
			item, ok := findHeldItem(entries, opt.StringValue())
			if !ok {
				return nil, fmt.Errorf(ErrMsgItemNotHeld, domain.ErrInsufficientInventory, opt.StringValue())
			}

			remaining, err := svc.Effects.Consume(ctx, accountID, item.ID)
			if err != nil {
				return nil, err
			}
			msg := fmt.Sprintf("Used one **%s**. %d left.", item.Name, remaining)
			return createEmbed("✨ Item Used", msg, ColorUse), nil
		})
	}

	return cmd, handler
}

// findHeldItem matches ref against slug, then name, case-insensitively
func findHeldItem(entries []domain.InventoryEntry, ref string) (domain.Item, bool) {
	ref = strings.TrimSpace(ref)
	for _, e := range entries {
		if e.Item.Slug != "" && strings.EqualFold(e.Item.Slug, ref) {
			return e.Item, true
		}
	}
	for _, e := range entries {
		if strings.EqualFold(e.Item.Name, ref) {
			return e.Item, true
		}
	}
	return domain.Item{}, false
}

func consumableAutocomplete(ctx context.Context, i *discordgo.InteractionCreate, svc Services, focused string) []*discordgo.ApplicationCommandOptionChoice {
	user := interactionUser(i)
	if user == nil {
		return nil
	}
	entries, err := svc.Economy.GetInventory(ctx, user.ID)
	if err != nil {
		return nil
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, e := range entries {
		if !e.Item.IsConsumable {
			continue
		}
		if focused != "" && !strings.Contains(strings.ToLower(e.Item.Name), focused) {
			continue
		}
		value := e.Item.Slug
		if value == "" {
			value = e.Item.Name
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s ×%d", e.Item.Name, e.Count),
			Value: value,
		})
		if len(choices) >= maxAutocompleteChoices {
			break
		}
	}
	return choices
}
