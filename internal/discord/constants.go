package discord

import "time"

// Command names
const (
	CmdCatch     = "catch"
	CmdShop      = "shop"
	CmdBuy       = "buy"
	CmdInventory = "inventory"
	CmdBalance   = "balance"
	CmdUse       = "use"
)

// Option names
const (
	OptItem     = "item"
	OptQuantity = "quantity"
)

// Embed colors
const (
	ColorSuccess   = 0x2ecc71
	ColorInfo      = 0x3498db
	ColorCatch     = 0x1abc9c
	ColorLegendary = 0xf1c40f
	ColorUse       = 0x9b59b6
)

// Footer for every embed
const FooterCatchBot = "CatchBot"

// Limits
const (
	maxAutocompleteChoices = 25
	commandTimeout         = 10 * time.Second
	healthTimeout          = 2 * time.Second
	shutdownTimeout        = 5 * time.Second
)

// Health status values
const (
	HealthStatusHealthy  = "healthy"
	HealthStatusDegraded = "degraded"
)

// Log messages
const (
	LogMsgBotReady              = "Discord bot is ready"
	LogMsgBotRunning            = "Discord bot is now running"
	LogMsgCommandFailed         = "Discord command failed"
	LogMsgUnknownCommand        = "Unhandled Discord command"
	LogMsgDeferFailed           = "Failed to send deferred response"
	LogMsgEditFailed            = "Failed to edit interaction response"
	LogMsgAutocompleteFailed    = "Failed to answer autocomplete"
	LogMsgCheckingCommands      = "Checking Discord commands"
	LogMsgCommandsUnchanged     = "Commands unchanged, skipping registration"
	LogMsgCommandsUpdated       = "Commands updated"
	LogMsgHealthServerStarting  = "Starting Discord health server"
	LogMsgHealthServerFailed    = "Discord health server failed"
	LogMsgHealthShutdownFailed  = "Discord health server shutdown failed"
	LogMsgHealthEncodeFailed    = "Failed to encode health response"
	LogMsgMissingUser           = "Interaction without a user"
)

// Error messages
const (
	ErrMsgCreateSessionFailed   = "error creating Discord session: %w"
	ErrMsgOpenConnectionFailed  = "error opening connection: %w"
	ErrMsgFetchCommandsFailed   = "failed to fetch existing commands: %w"
	ErrMsgOverwriteCommandsFail = "failed to update commands: %w"
	ErrMsgMissingItemOption     = "missing required item argument"
	ErrMsgItemNotHeld           = "%w: you hold no %q"
)
