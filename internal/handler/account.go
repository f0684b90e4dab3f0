package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"gold-casino-bot/internal/pkg/db"
	"gold-casino-bot/internal/service"
)

// AccountHandler handles gold balance and leaderboard commands.
type AccountHandler struct {
	economy *service.EconomyService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(economy *service.EconomyService) *AccountHandler {
	return &AccountHandler{economy: economy}
}

// HandleGold handles the /gold command.
func (h *AccountHandler) HandleGold(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	gold, err := h.economy.GetGold(ctx, sender.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", sender.ID).Msg("Failed to get gold balance")
		return c.Reply("❌ Could not fetch your balance, try again later")
	}

	return c.Reply(fmt.Sprintf("💰 You have %d gold", gold))
}

// HandleLeaderboard handles the /leaderboard command. Ranks by lifetime
// casino earnings, not current balance.
func (h *AccountHandler) HandleLeaderboard(c tele.Context) error {
	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	top, err := h.economy.Leaderboard(ctx, 10)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get leaderboard")
		return c.Reply("❌ Could not fetch the leaderboard, try again later")
	}

	if len(top) == 0 {
		return c.Reply("🏆 Nobody has played yet")
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	b.WriteString("🏆 Casino Leaderboard\n\n")
	for i, stats := range top {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		name := stats.Username
		if name == "" {
			name = h.lookupName(c, stats.UserID)
		}
		fmt.Fprintf(&b, "%s %s - earned %d, net %+d\n", rank, name, stats.TotalEarned, stats.Net())
	}
	return c.Reply(b.String())
}

// lookupName resolves a display name for a user in the current chat. The
// ledger only stores IDs; Telegram is the source of usernames.
func (h *AccountHandler) lookupName(c tele.Context, userID int64) string {
	chat := c.Chat()
	if chat == nil {
		return fmt.Sprintf("user %d", userID)
	}
	member, err := c.Bot().ChatMemberOf(chat, &tele.User{ID: userID})
	if err != nil || member.User == nil {
		return fmt.Sprintf("user %d", userID)
	}
	if member.User.Username != "" {
		return "@" + member.User.Username
	}
	return member.User.FirstName
}
