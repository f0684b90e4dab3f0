package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"gold-casino-bot/internal/pkg/db"
	"gold-casino-bot/internal/pkg/lock"
	"gold-casino-bot/internal/service"
)

// AdminHandler handles admin-only gold commands.
type AdminHandler struct {
	economy *service.EconomyService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(economy *service.EconomyService) *AdminHandler {
	return &AdminHandler{economy: economy}
}

// HandleGrant handles the /grant command: /grant <amount> as a reply to the
// target's message, or /grant <user_id> <amount>. Negative amounts deduct.
func (h *AdminHandler) HandleGrant(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	target, amount, ok := parseGrant(c)
	if !ok {
		return c.Reply("❌ Usage: reply with /grant <amount>, or /grant <user_id> <amount>")
	}

	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	balance, err := h.economy.Grant(ctx, target, amount)
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			return c.Reply("❌ That user has a game running, try again later")
		}
		log.Error().Err(err).Int64("target", target).Int64("amount", amount).Msg("Failed to grant gold")
		return c.Reply("❌ Grant failed, try again later")
	}

	log.Info().
		Int64("admin", sender.ID).
		Int64("target", target).
		Int64("amount", amount).
		Msg("Gold granted")

	return c.Reply(fmt.Sprintf("✅ Granted %+d gold, balance is now %d", amount, balance))
}

// parseGrant resolves the grant target and amount from either command form.
func parseGrant(c tele.Context) (target int64, amount int64, ok bool) {
	args := c.Args()

	if msg := c.Message(); msg != nil && msg.ReplyTo != nil && msg.ReplyTo.Sender != nil {
		if len(args) != 1 {
			return 0, 0, false
		}
		amount, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || amount == 0 {
			return 0, 0, false
		}
		return msg.ReplyTo.Sender.ID, amount, true
	}

	if len(args) != 2 {
		return 0, 0, false
	}
	target, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || target <= 0 {
		return 0, 0, false
	}
	amount, err = strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount == 0 {
		return 0, 0, false
	}
	return target, amount, true
}
