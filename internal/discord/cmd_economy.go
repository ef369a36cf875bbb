package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/catchbot/internal/domain"
)

// ShopCommand lists what is on sale
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdShop,
		Description: "View the shop",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc Services) {
		handleEmbedResponse(ctx, s, i, func() (*discordgo.MessageEmbed, error) {
			listings, err := svc.Economy.GetShopListings(ctx)
			if err != nil {
				return nil, err
			}
			if len(listings) == 0 {
				return createEmbed("🏪 Shop", "The shop is empty.", ColorInfo), nil
			}

			var b strings.Builder
			for _, l := range listings {
				fmt.Fprintf(&b, "**%s** · %s", l.Item.Name, formatCoins(l.Cost))
				if kind := itemKind(l.Item); kind != "" {
					fmt.Fprintf(&b, " · _%s_", kind)
				}
				b.WriteString("\n")
			}
			return createEmbed("🏪 Shop", b.String(), ColorInfo), nil
		})
	}

	return cmd, handler
}

// BuyCommand purchases a listing
func BuyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdBuy,
		Description: "Purchase an item from the shop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         OptItem,
				Description:  "Item to buy",
				Required:     true,
				Autocomplete: true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        OptQuantity,
				Description: "Quantity to buy (default: 1)",
				Required:    false,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc Services) {
		handleEmbedResponse(ctx, s, i, func() (*discordgo.MessageEmbed, error) {
			opts := optionMap(i)
			item, ok := opts[OptItem]
			if !ok {
				return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingItemOption)
			}
			quantity := 1
			if q, ok := opts[OptQuantity]; ok {
				quantity = int(q.IntValue())
			}

			accountID, err := accountFor(ctx, i, svc)
			if err != nil {
				return nil, err
			}
			res, err := svc.Economy.Purchase(ctx, accountID, item.StringValue(), quantity)
			if err != nil {
				return nil, err
			}

			msg := fmt.Sprintf("Bought **%d× %s** for **%s**.\nYou now hold %d. Balance: **%s**",
				res.Quantity, res.Listing.Item.Name, formatCoins(res.TotalCost), res.InventoryCount, formatCoins(res.Balance))
			return createEmbed("💰 Purchase Complete", msg, ColorSuccess), nil
		})
	}

	return cmd, handler
}

// BalanceCommand shows the caller's balance
func BalanceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdBalance,
		Description: "Check your balance",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc Services) {
		handleEmbedResponse(ctx, s, i, func() (*discordgo.MessageEmbed, error) {
			accountID, err := accountFor(ctx, i, svc)
			if err != nil {
				return nil, err
			}
			balance, err := svc.Economy.GetAccountBalance(ctx, accountID)
			if err != nil {
				return nil, err
			}
			return createEmbed("👛 Balance", fmt.Sprintf("You have **%s**.", formatCoins(balance)), ColorInfo), nil
		})
	}

	return cmd, handler
}

func listingAutocomplete(ctx context.Context, _ *discordgo.InteractionCreate, svc Services, focused string) []*discordgo.ApplicationCommandOptionChoice {
	listings, err := svc.Economy.GetShopListings(ctx)
	if err != nil {
		return nil
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(listings))
	for _, l := range listings {
		if focused != "" && !strings.Contains(strings.ToLower(l.Item.Name), focused) {
			continue
		}
		value := l.Item.Slug
		if value == "" {
			value = fmt.Sprint(l.ID)
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%s)", l.Item.Name, formatCoins(l.Cost)),
			Value: value,
		})
		if len(choices) >= maxAutocompleteChoices {
			break
		}
	}
	return choices
}
