// Package bot provides the Telegram bot initialization and handler registration.
package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"gold-casino-bot/internal/casino/slots"
	"gold-casino-bot/internal/config"
	"gold-casino-bot/internal/handler"
	"gold-casino-bot/internal/pkg/lock"
	"gold-casino-bot/internal/service"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot      *tele.Bot
	cfg      *config.Config
	userLock *lock.UserLock

	casinoHandler     *handler.CasinoHandler
	accountHandler    *handler.AccountHandler
	adminHandler      *handler.AdminHandler
	gachaHandler      *handler.GachaHandler
	submissionHandler *handler.SubmissionHandler
}

// Dependencies holds all the dependencies needed by the bot handlers.
type Dependencies struct {
	Config            *config.Config
	EconomyService    *service.EconomyService
	GachaService      *service.GachaService
	SubmissionService *service.SubmissionService
	SlotMachine       *slots.Machine
	UserLock          *lock.UserLock
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:      teleBot,
		cfg:      deps.Config,
		userLock: deps.UserLock,
	}

	b.casinoHandler = handler.NewCasinoHandler(deps.Config, deps.EconomyService, deps.SlotMachine, deps.UserLock)
	b.accountHandler = handler.NewAccountHandler(deps.EconomyService)
	b.adminHandler = handler.NewAdminHandler(deps.EconomyService)
	b.gachaHandler = handler.NewGachaHandler(deps.GachaService)
	b.submissionHandler = handler.NewSubmissionHandler(deps.SubmissionService)

	b.registerMiddleware()
	b.registerHandlers()

	return b, nil
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware() {
	b.bot.Use(RecoveryMiddleware())
	b.bot.Use(WhitelistMiddleware(b.cfg))
	b.bot.Use(LoggingMiddleware())
}

// registerHandlers registers all command and callback handlers.
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.handleStart)

	// Account handlers
	b.bot.Handle("/gold", b.accountHandler.HandleGold)
	b.bot.Handle("/leaderboard", b.accountHandler.HandleLeaderboard)

	// Game handlers
	b.bot.Handle("/blackjack", b.casinoHandler.HandleBlackjack)
	b.bot.Handle("/highlow", b.casinoHandler.HandleHighLow)
	b.bot.Handle("/slots", b.casinoHandler.HandleSlots)

	// Gacha handlers
	b.bot.Handle("/roll", b.gachaHandler.HandleRoll)
	b.bot.Handle("/inventory", b.gachaHandler.HandleInventory)
	b.bot.Handle("/combine", b.gachaHandler.HandleCombine)
	b.bot.Handle("/catalog", b.gachaHandler.HandleCatalog)

	// Submission handlers
	b.bot.Handle("/streak", b.submissionHandler.HandleStreak)
	b.bot.Handle(tele.OnPhoto, b.submissionHandler.HandlePhoto)

	// Callback handler for inline game buttons
	b.bot.Handle(tele.OnCallback, b.handleCallback)

	// Admin commands
	adminGroup := b.bot.Group()
	adminGroup.Use(AdminMiddleware(b.cfg))
	adminGroup.Handle("/grant", b.adminHandler.HandleGrant)
}

// handleStart replies with the command overview.
func (b *Bot) handleStart(c tele.Context) error {
	return c.Reply(`🎰 Gold Casino Bot

Games:
/blackjack <bet> - Blackjack against the dealer
/highlow <bet> - Guess higher or lower, cash out anytime
/slots <bet> - Spin the slot machine

Gold:
/gold - Your balance
/leaderboard - Top casino earners
Post a photo to earn your daily gold

Collection:
/roll [count] - Roll the gacha
/inventory - Your items
/combine <id> - Combine copies into a higher rarity
/catalog - The full item pool
/streak - Your submission streak`)
}

// handleCallback routes inline button callbacks to the casino handler.
func (b *Bot) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	// Telebot v3 may add a \f prefix to callback data
	data := strings.TrimPrefix(callback.Data, "\f")

	if strings.HasPrefix(data, handler.CallbackPrefix) {
		return b.casinoHandler.HandleCallback(c)
	}

	log.Debug().Str("data", data).Msg("Ignoring unknown callback")
	return c.Respond(&tele.CallbackResponse{})
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}
