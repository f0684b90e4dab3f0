package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"gold-casino-bot/internal/catalog"
	"gold-casino-bot/internal/pkg/db"
	"gold-casino-bot/internal/pkg/lock"
	"gold-casino-bot/internal/repository"
	"gold-casino-bot/internal/service"
)

// GachaHandler handles gacha rolls, inventory and combining.
type GachaHandler struct {
	gacha *service.GachaService
}

// NewGachaHandler creates a new GachaHandler.
func NewGachaHandler(gacha *service.GachaService) *GachaHandler {
	return &GachaHandler{gacha: gacha}
}

// HandleRoll handles the /roll command. With no argument a single roll is
// made.
func (h *GachaHandler) HandleRoll(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	count := 1
	if args := c.Args(); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return c.Reply("❌ Usage: /roll [count]\nExample: /roll 10")
		}
		count = n
	}

	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	items, err := h.gacha.Roll(ctx, sender.ID, count)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRollCountInvalid):
			return c.Reply("❌ Invalid roll count")
		case errors.Is(err, service.ErrInsufficientGold):
			return c.Reply(fmt.Sprintf("❌ Not enough gold, %d rolls cost %d", count, int64(count)*h.gacha.RollCost()))
		case errors.Is(err, lock.ErrLockTimeout):
			return c.Reply("❌ Finish your current game first")
		default:
			log.Error().Err(err).Int64("user_id", sender.ID).Msg("Failed to roll gacha")
			return c.Reply("❌ Roll failed, try again later")
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎁 You rolled %d time(s):\n\n", len(items))
	for _, item := range items {
		fmt.Fprintf(&b, "%s %s (%s)\n", item.Emoji, item.Name, item.Rarity)
	}
	return c.Reply(b.String())
}

// HandleInventory handles the /inventory command.
func (h *GachaHandler) HandleInventory(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	stacks, err := h.gacha.Inventory(ctx, sender.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", sender.ID).Msg("Failed to get inventory")
		return c.Reply("❌ Could not fetch your inventory, try again later")
	}

	if len(stacks) == 0 {
		return c.Reply("🎒 Your inventory is empty. Try /roll")
	}

	var b strings.Builder
	b.WriteString("🎒 Your inventory:\n\n")
	for _, stack := range stacks {
		item, ok := catalog.Get(stack.ItemID)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s %s (%s) ×%d - id %d\n", item.Emoji, item.Name, item.Rarity, stack.Quantity, item.ID)
	}
	fmt.Fprintf(&b, "\nCombine %d copies with /combine <id>", h.gacha.CombineCost())
	return c.Reply(b.String())
}

// HandleCombine handles the /combine command.
func (h *GachaHandler) HandleCombine(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	args := c.Args()
	if len(args) < 1 {
		return c.Reply("❌ Usage: /combine <item id>\nSee /inventory for ids")
	}
	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return c.Reply("❌ Usage: /combine <item id>\nSee /inventory for ids")
	}

	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	upgraded, err := h.gacha.Combine(ctx, sender.ID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownItem):
			return c.Reply("❌ No such item")
		case errors.Is(err, service.ErrNoHigherRarity):
			return c.Reply("❌ That item is already the highest rarity")
		case errors.Is(err, repository.ErrNotEnoughItems):
			return c.Reply(fmt.Sprintf("❌ You need %d copies to combine", h.gacha.CombineCost()))
		case errors.Is(err, lock.ErrLockTimeout):
			return c.Reply("❌ Finish your current game first")
		default:
			log.Error().Err(err).Int64("user_id", sender.ID).Msg("Failed to combine items")
			return c.Reply("❌ Combine failed, try again later")
		}
	}

	if upgraded == nil {
		return c.Reply(fmt.Sprintf("💨 The combine fizzled. %d copies consumed", h.gacha.CombineCost()))
	}
	return c.Reply(fmt.Sprintf("✨ Combined into %s %s (%s)!", upgraded.Emoji, upgraded.Name, upgraded.Rarity))
}

// HandleCatalog handles the /catalog command, listing the full item pool by
// rarity.
func (h *GachaHandler) HandleCatalog(c tele.Context) error {
	var b strings.Builder
	b.WriteString("📖 Item catalog:\n")
	for _, rarity := range []catalog.Rarity{catalog.Legendary, catalog.Epic, catalog.Rare, catalog.Common} {
		fmt.Fprintf(&b, "\n%s:\n", rarity)
		for _, item := range catalog.ByRarity(rarity) {
			fmt.Fprintf(&b, "  %s %s - id %d\n", item.Emoji, item.Name, item.ID)
		}
	}
	return c.Reply(b.String())
}
