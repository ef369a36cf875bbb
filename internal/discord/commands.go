package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/catchbot/internal/catch"
	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/economy"
	"github.com/osse101/catchbot/internal/effects"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/metrics"
)

// Services are the core operations the commands call in-process
type Services struct {
	Economy economy.Service
	Catch   catch.Service
	Effects effects.Service
}

// CommandHandler handles a slash command
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc Services)

// AutocompleteHandler answers autocomplete for a command's focused option
type AutocompleteHandler func(ctx context.Context, i *discordgo.InteractionCreate, svc Services, focused string) []*discordgo.ApplicationCommandOptionChoice

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands       map[string]*discordgo.ApplicationCommand
	Handlers       map[string]CommandHandler
	Autocompleters map[string]AutocompleteHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands:       make(map[string]*discordgo.ApplicationCommand),
		Handlers:       make(map[string]CommandHandler),
		Autocompleters: make(map[string]AutocompleteHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// RegisterAutocomplete attaches an autocomplete handler to a registered command
func (r *CommandRegistry) RegisterAutocomplete(name string, handler AutocompleteHandler) {
	r.Autocompleters[name] = handler
}

// DefaultRegistry registers every slash command
func DefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	r.Register(CatchCommand())
	r.Register(ShopCommand())
	r.Register(BuyCommand())
	r.Register(BalanceCommand())
	r.Register(InventoryCommand())
	r.Register(UseCommand())
	r.RegisterAutocomplete(CmdBuy, listingAutocomplete)
	r.RegisterAutocomplete(CmdUse, consumableAutocomplete)
	return r
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc Services) {
	log := logger.FromContext(ctx)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := r.Handlers[name]
		if !ok {
			log.Warn(LogMsgUnknownCommand, "command", name)
			return
		}
		RecordCommand(name)
		h(ctx, s, i, svc)
	case discordgo.InteractionApplicationCommandAutocomplete:
		data := i.ApplicationCommandData()
		h, ok := r.Autocompleters[data.Name]
		if !ok {
			log.Warn(LogMsgUnknownCommand, "command", data.Name)
			return
		}
		choices := h(ctx, i, svc, focusedValue(data.Options))
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionApplicationCommandAutocompleteResult,
			Data: &discordgo.InteractionResponseData{Choices: choices},
		}); err != nil {
			log.Error(LogMsgAutocompleteFailed, "command", data.Name, "error", err)
		}
	}
}

// RegisterCommands registers the registry's commands, skipping the call when
// Discord already has an identical set
func (b *Bot) RegisterCommands(ctx context.Context, registry *CommandRegistry, forceUpdate bool) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCheckingCommands)

	desired := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desired = append(desired, cmd)
	}

	if !forceUpdate {
		existing, err := b.Session.ApplicationCommands(b.AppID, "")
		if err != nil {
			return fmt.Errorf(ErrMsgFetchCommandsFailed, err)
		}
		if commandsEqual(existing, desired) {
			log.Info(LogMsgCommandsUnchanged, "count", len(existing))
			return nil
		}
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desired); err != nil {
		return fmt.Errorf(ErrMsgOverwriteCommandsFail, err)
	}
	log.Info(LogMsgCommandsUpdated, "count", len(desired), "forced", forceUpdate)
	return nil
}

func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	byName := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		byName[cmd.Name] = cmd
	}
	for _, want := range desired {
		have, ok := byName[want.Name]
		if !ok || !commandEqual(have, want) {
			return false
		}
	}
	return true
}

func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description || len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description ||
		a.Required != b.Required || a.Autocomplete != b.Autocomplete {
		return false
	}
	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || a.Choices[i].Value != b.Choices[i].Value {
			return false
		}
	}
	return true
}

// deferResponse acknowledges an interaction so the handler may take longer
// than three seconds. It returns false when the acknowledgement failed.
func deferResponse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// ResponseConfig defines the visual properties of a command response embed
type ResponseConfig struct {
	Title string
	Color int
}

// handleEmbedResponse defers, runs action, and edits the reply with either
// the resulting embed or a friendly error
func handleEmbedResponse(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	action func() (*discordgo.MessageEmbed, error),
) {
	if !deferResponse(ctx, s, i) {
		return
	}

	embed, err := action()
	if err != nil {
		log := logger.FromContext(ctx)
		if domain.IsBusinessError(err) {
			log.Info(LogMsgCommandFailed, "command", i.ApplicationCommandData().Name, "error", err)
		} else {
			log.Error(LogMsgCommandFailed, "command", i.ApplicationCommandData().Name, "error", err)
		}
		respondText(ctx, s, i, formatFriendlyError(err))
		return
	}
	sendEmbed(ctx, s, i, embed)
}

func respondText(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgEditFailed, "error", err)
	}
}

func sendEmbed(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgEditFailed, "error", err)
	}
}

func createEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: FooterCatchBot},
	}
}

// interactionUser returns the invoking user in guilds (Member.User) and DMs (User)
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// interactionScope maps the guild of the interaction to its rate limit scope
func interactionScope(i *discordgo.InteractionCreate) domain.Scope {
	if i.GuildID == "" {
		return domain.NoContextScope()
	}
	return domain.GuildScope(i.GuildID)
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		out[opt.Name] = opt
	}
	return out
}

func focusedValue(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range opts {
		if opt.Focused {
			return strings.ToLower(strings.TrimSpace(opt.StringValue()))
		}
	}
	return ""
}

// accountFor ensures the invoking user has an account and returns its id
func accountFor(ctx context.Context, i *discordgo.InteractionCreate, svc Services) (string, error) {
	user := interactionUser(i)
	if user == nil {
		logger.FromContext(ctx).Warn(LogMsgMissingUser)
		return "", fmt.Errorf("%w: interaction without user", domain.ErrInvalidInput)
	}
	if _, err := svc.Economy.EnsureAccount(ctx, user.ID); err != nil {
		return "", err
	}
	return user.ID, nil
}

// RecordCommand counts a handled command
func RecordCommand(name string) {
	metrics.DiscordCommands.WithLabelValues(name).Inc()
	recordActivity()
}
