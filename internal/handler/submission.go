package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"gold-casino-bot/internal/pkg/db"
	"gold-casino-bot/internal/pkg/lock"
	"gold-casino-bot/internal/service"
)

// SubmissionHandler rewards photo submissions and reports streaks.
type SubmissionHandler struct {
	submissions *service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissions *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// HandlePhoto handles photo messages. Each new photo earns the base reward
// plus a streak bonus for consecutive daily submissions.
func (h *SubmissionHandler) HandlePhoto(c tele.Context) error {
	sender := c.Sender()
	msg := c.Message()
	if sender == nil || msg == nil {
		return nil
	}

	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := h.submissions.Award(ctx, sender.ID, int64(msg.ID))
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitted) {
			return nil
		}
		if errors.Is(err, lock.ErrLockTimeout) {
			return c.Reply("❌ Finish your current game first, then repost to collect your reward")
		}
		log.Error().Err(err).Int64("user_id", sender.ID).Msg("Failed to award submission")
		return nil
	}

	log.Info().
		Int64("user_id", sender.ID).
		Int64("awarded", result.Awarded).
		Int("streak", result.Streak).
		Msg("Submission rewarded")

	text := fmt.Sprintf("🪙 +%d gold for your submission", result.Awarded)
	if result.Bonus > 0 {
		text += fmt.Sprintf(" (streak %d, bonus +%d)", result.Streak, result.Bonus)
	}
	return c.Reply(text)
}

// HandleStreak handles the /streak command.
func (h *SubmissionHandler) HandleStreak(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	streak, err := h.submissions.Streak(ctx, sender.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", sender.ID).Msg("Failed to get streak")
		return c.Reply("❌ Could not fetch your streak, try again later")
	}

	if streak == 0 {
		return c.Reply("📅 No submission streak yet. Post a photo to start one")
	}
	return c.Reply(fmt.Sprintf("📅 Your submission streak is %d day(s)", streak))
}
