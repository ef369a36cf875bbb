package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/catchbot/internal/logger"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	Registry *CommandRegistry
	Services Services

	forceUpdate bool
	ctx         context.Context
}

// Config holds the bot configuration
type Config struct {
	Token              string
	AppID              string
	ForceCommandUpdate bool
}

// New creates a new Discord bot over the in-process services
func New(cfg Config, svc Services) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSessionFailed, err)
	}

	return &Bot{
		Session:     s,
		AppID:       cfg.AppID,
		Registry:    DefaultRegistry(),
		Services:    svc,
		forceUpdate: cfg.ForceCommandUpdate,
		ctx:         context.Background(),
	}, nil
}

// Start opens the gateway connection and registers the slash commands.
// ctx is the parent of every command's context.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf(ErrMsgOpenConnectionFailed, err)
	}
	if err := b.RegisterCommands(ctx, b.Registry, b.forceUpdate); err != nil {
		_ = b.Session.Close()
		return err
	}

	logger.FromContext(ctx).Info(LogMsgBotRunning, "commands", len(b.Registry.Commands))
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() {
	_ = b.Session.Close()
}

// Run runs the bot until ctx is done
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(ctx); err != nil {
		return err
	}
	defer b.Stop()

	<-ctx.Done()
	return nil
}

// Connected reports whether the gateway session is ready
func (b *Bot) Connected() bool {
	return b.Session != nil && b.Session.DataReady
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	logger.FromContext(b.ctx).Info(LogMsgBotReady, "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(logger.WithRequestID(b.ctx, i.ID), commandTimeout)
	defer cancel()
	b.Registry.Handle(ctx, s, i, b.Services)
}
