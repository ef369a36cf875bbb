package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CatchCommand returns the catch command definition and handler
func CatchCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdCatch,
		Description: "Cast a line and see what you catch",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc Services) {
		handleEmbedResponse(ctx, s, i, func() (*discordgo.MessageEmbed, error) {
			accountID, err := accountFor(ctx, i, svc)
			if err != nil {
				return nil, err
			}

			res, err := svc.Catch.AttemptReward(ctx, accountID, interactionScope(i))
			if err != nil {
				return nil, err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "You caught a **%s** (%s) worth **%s**!", res.Reward.Name, formatTier(res.Tier), formatCoins(res.Worth))
			if res.FirstClaim {
				fmt.Fprintf(&b, "\n🏆 First ever catch! Bonus **%s**.", formatCoins(res.Bonus))
			}
			if res.ConsumedItem != nil {
				fmt.Fprintf(&b, "\n🪱 Used one **%s**.", res.ConsumedItem.Name)
			}
			fmt.Fprintf(&b, "\nBalance: **%s**", formatCoins(res.Balance))

			return createEmbed("🎣 Catch!", b.String(), tierColor(res.Tier)), nil
		})
	}

	return cmd, handler
}
