package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"gold-casino-bot/internal/casino"
	"gold-casino-bot/internal/casino/blackjack"
	"gold-casino-bot/internal/casino/deck"
	"gold-casino-bot/internal/casino/highlow"
	"gold-casino-bot/internal/casino/slots"
	"gold-casino-bot/internal/config"
	"gold-casino-bot/internal/pkg/db"
	"gold-casino-bot/internal/pkg/lock"
	"gold-casino-bot/internal/service"
)

const (
	// SessionTimeout is how long an unfinished game stays open before the
	// table is closed and the wager released.
	SessionTimeout = 30 * time.Minute

	// dbTimeout bounds the database calls around a game.
	dbTimeout = 5 * time.Second

	// slotFrameDelay spaces the reel animation edits so Telegram does not
	// throttle them.
	slotFrameDelay = 250 * time.Millisecond
)

// tableSession binds one in-flight game message to its gate. view formats
// the current game state, move applies a callback action to the engine.
type tableSession struct {
	gate *casino.Gate
	view func() (string, *tele.ReplyMarkup)
	move func(action string, bet int64) (int64, *casino.Settlement, error)

	bot *tele.Bot
	msg *tele.Message
	mu  sync.Mutex // serializes message edits
}

// render redraws the game message from the current state.
func (s *tableSession) render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, markup := s.view()
	s.edit(text, markup)
}

// edit updates the game message, dropping the keyboard when markup is nil.
// A session without a live message has nothing to redraw.
func (s *tableSession) edit(text string, markup *tele.ReplyMarkup) {
	if s.bot == nil || s.msg == nil {
		return
	}
	var err error
	if markup != nil {
		_, err = s.bot.Edit(s.msg, text, markup)
	} else {
		_, err = s.bot.Edit(s.msg, text)
	}
	if err != nil {
		log.Debug().Err(err).Int("msg_id", s.msg.ID).Msg("Failed to edit game message")
	}
}

// CasinoHandler handles the interactive casino games: blackjack, high-low
// and the slot machine.
type CasinoHandler struct {
	cfg      *config.Config
	economy  *service.EconomyService
	machine  *slots.Machine
	userLock *lock.UserLock
	sessions sync.Map // map[string]*tableSession - key: "chatID:messageID"
}

// NewCasinoHandler creates a new CasinoHandler.
func NewCasinoHandler(
	cfg *config.Config,
	economy *service.EconomyService,
	machine *slots.Machine,
	userLock *lock.UserLock,
) *CasinoHandler {
	return &CasinoHandler{
		cfg:      cfg,
		economy:  economy,
		machine:  machine,
		userLock: userLock,
	}
}

func sessionKey(chatID int64, messageID int) string {
	return fmt.Sprintf("%d:%d", chatID, messageID)
}

// parseBet reads the wager from command arguments.
func parseBet(args []string) (int64, bool) {
	if len(args) < 1 {
		return 0, false
	}
	bet, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || bet <= 0 {
		return 0, false
	}
	return bet, true
}

// stakeErrorText maps a stake failure to a user-facing reply.
func stakeErrorText(err error, minBet, maxBet int64) string {
	switch {
	case errors.Is(err, service.ErrBetOutOfRange):
		return fmt.Sprintf("❌ Bet must be between %d and %d gold", minBet, maxBet)
	case errors.Is(err, service.ErrInsufficientGold):
		return "❌ Not enough gold"
	default:
		return "❌ Could not start the game, try again later"
	}
}

// HandleBlackjack handles the /blackjack command.
func (h *CasinoHandler) HandleBlackjack(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	bet, ok := parseBet(c.Args())
	if !ok {
		return c.Reply("❌ Usage: /blackjack <bet>\nExample: /blackjack 100")
	}

	if !h.userLock.TryLock(sender.ID) {
		return c.Reply("❌ Finish your current game first")
	}

	gcfg := h.cfg.Games.Blackjack
	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	stake, err := h.economy.Stake(ctx, sender.ID, bet, gcfg.MinBet, gcfg.MaxBet)
	cancel()
	if err != nil {
		h.userLock.Unlock(sender.ID)
		return c.Reply(stakeErrorText(err, gcfg.MinBet, gcfg.MaxBet))
	}

	game, err := blackjack.New(stake.CanDouble)
	if err != nil {
		h.userLock.Unlock(sender.ID)
		return c.Reply("❌ Could not deal, try again")
	}

	sess := &tableSession{bot: c.Bot()}
	sess.view = func() (string, *tele.ReplyMarkup) {
		return blackjackView(game, sess.gate.Bet())
	}
	sess.move = func(action string, bet int64) (int64, *casino.Settlement, error) {
		return blackjackMove(game, action, bet)
	}
	sess.gate = casino.NewGate(sender.ID, bet, sess.render)

	return h.runTable(c, sess, sender.ID)
}

// HandleHighLow handles the /highlow command.
func (h *CasinoHandler) HandleHighLow(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	bet, ok := parseBet(c.Args())
	if !ok {
		return c.Reply("❌ Usage: /highlow <bet>\nExample: /highlow 100")
	}

	if !h.userLock.TryLock(sender.ID) {
		return c.Reply("❌ Finish your current game first")
	}

	gcfg := h.cfg.Games.HighLow
	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	_, err := h.economy.Stake(ctx, sender.ID, bet, gcfg.MinBet, gcfg.MaxBet)
	cancel()
	if err != nil {
		h.userLock.Unlock(sender.ID)
		return c.Reply(stakeErrorText(err, gcfg.MinBet, gcfg.MaxBet))
	}

	game, err := highlow.New(bet)
	if err != nil {
		h.userLock.Unlock(sender.ID)
		return c.Reply("❌ Could not deal, try again")
	}

	table := &highLowTable{game: game}
	sess := &tableSession{bot: c.Bot()}
	sess.view = func() (string, *tele.ReplyMarkup) {
		return table.view(sess.gate.Bet())
	}
	sess.move = table.move
	sess.gate = casino.NewGate(sender.ID, bet, sess.render)

	return h.runTable(c, sess, sender.ID)
}

// HandleSlots handles the /slots command.
func (h *CasinoHandler) HandleSlots(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	bet, ok := parseBet(c.Args())
	if !ok {
		return c.Reply("❌ Usage: /slots <bet>\nExample: /slots 100")
	}

	if !h.userLock.TryLock(sender.ID) {
		return c.Reply("❌ Finish your current game first")
	}

	gcfg := h.cfg.Games.Slots
	ctx, cancel := db.WithTimeout(context.Background(), dbTimeout)
	_, err := h.economy.Stake(ctx, sender.ID, bet, gcfg.MinBet, gcfg.MaxBet)
	cancel()
	if err != nil {
		h.userLock.Unlock(sender.ID)
		return c.Reply(stakeErrorText(err, gcfg.MinBet, gcfg.MaxBet))
	}

	table := &slotsTable{machine: h.machine, frames: gcfg.SpinFrames, bet: bet}
	sess := &tableSession{bot: c.Bot()}
	sess.view = table.view
	sess.move = table.move
	sess.gate = casino.NewGate(sender.ID, bet, sess.render)
	table.sess = sess

	return h.runTable(c, sess, sender.ID)
}

// runTable sends the game message, routes callbacks to it and blocks until
// the game resolves, then settles the wager. The caller must hold the user
// lock; it is released here so the balance cannot move under a live game.
func (h *CasinoHandler) runTable(c tele.Context, sess *tableSession, userID int64) error {
	defer h.userLock.Unlock(userID)

	text, markup := sess.view()
	msg, err := c.Bot().Send(c.Chat(), text, markup)
	if err != nil {
		return err
	}
	sess.msg = msg

	key := sessionKey(msg.Chat.ID, msg.ID)
	h.sessions.Store(key, sess)
	defer h.sessions.Delete(key)

	ctx, cancel := context.WithTimeout(context.Background(), SessionTimeout)
	defer cancel()

	result, err := sess.gate.Await(ctx)
	if err != nil {
		log.Debug().Err(err).Int64("user_id", userID).Msg("Game closed without settlement")
		sess.mu.Lock()
		if errors.Is(err, casino.ErrAborted) {
			sess.edit("⚠️ The game was cancelled, your bet was not taken", nil)
		} else {
			sess.edit("⌛ Game expired", nil)
		}
		sess.mu.Unlock()
		return nil
	}

	dbCtx, dbCancel := db.WithTimeout(context.Background(), dbTimeout)
	balance, err := h.economy.Settle(dbCtx, userID, result)
	dbCancel()
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to settle game")
		return c.Reply("❌ Settlement failed, please try again later")
	}

	log.Info().
		Int64("user_id", userID).
		Int64("bet", result.Bet).
		Int64("net", result.Net()).
		Str("outcome", result.Outcome).
		Msg("Game settled")

	sess.mu.Lock()
	text, _ = sess.view()
	sess.edit(fmt.Sprintf("%s\n💰 Balance: %d", text, balance), nil)
	sess.mu.Unlock()
	return nil
}

// HandleCallback handles casino game inline button callbacks.
func (h *CasinoHandler) HandleCallback(c tele.Context) error {
	callback := c.Callback()
	sender := c.Sender()
	if callback == nil || sender == nil || callback.Message == nil {
		return nil
	}

	data := strings.TrimPrefix(callback.Data, "\f")
	action, _ := DecodeCallback(data)
	if action == "" {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}

	key := sessionKey(callback.Message.Chat.ID, callback.Message.ID)
	v, ok := h.sessions.Load(key)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "This game is over"})
	}
	sess := v.(*tableSession)

	err := sess.gate.Submit(sender.ID, func(bet int64) (int64, *casino.Settlement, error) {
		return sess.move(action, bet)
	})
	switch {
	case err == nil:
		return c.Respond(&tele.CallbackResponse{})
	case errors.Is(err, casino.ErrNotYourGame):
		return c.Respond(&tele.CallbackResponse{
			Text:      "This is not your game!",
			ShowAlert: true,
		})
	case errors.Is(err, casino.ErrGameOver):
		return c.Respond(&tele.CallbackResponse{Text: "This game is over"})
	case errors.Is(err, casino.ErrAborted):
		return c.Respond(&tele.CallbackResponse{
			Text:      "❌ The game could not continue",
			ShowAlert: true,
		})
	default:
		return c.Respond(&tele.CallbackResponse{Text: "❌ " + err.Error()})
	}
}

// renderHand formats a hand of cards for display.
func renderHand(hand []deck.Card) string {
	parts := make([]string, len(hand))
	for i, card := range hand {
		parts[i] = card.String()
	}
	return strings.Join(parts, ", ")
}

// blackjackView formats the blackjack table. While the game runs the
// dealer's hole card stays hidden.
func blackjackView(g *blackjack.Game, bet int64) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	fmt.Fprintf(&b, "🃏 Blackjack (bet %d)\n\n", bet)
	fmt.Fprintf(&b, "Your hand: %s (%d)\n", renderHand(g.PlayerHand), g.PlayerScore())

	if g.Over {
		fmt.Fprintf(&b, "Dealer's hand: %s (%d)\n", renderHand(g.DealerHand), g.DealerScore())
		text, _ := g.CheckWinner()
		b.WriteString("\n" + text)
		return b.String(), nil
	}

	fmt.Fprintf(&b, "Dealer shows: %s, 🂠", g.DealerHand[0])

	row := []tele.InlineButton{
		{Text: "Hit", Data: EncodeCallback("hit", "")},
		{Text: "Stand", Data: EncodeCallback("stand", "")},
	}
	if g.CanDouble && !g.Doubled && len(g.PlayerHand) == 2 {
		row = append(row, tele.InlineButton{Text: "Double", Data: EncodeCallback("double", "")})
	}
	markup := &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{row}}
	return b.String(), markup
}

// blackjackMove applies one callback action to a blackjack game. A deck
// running dry voids the table.
func blackjackMove(g *blackjack.Game, action string, bet int64) (int64, *casino.Settlement, error) {
	var err error
	switch action {
	case "hit":
		err = g.Hit()
	case "stand":
		err = g.Stand()
	case "double":
		if err = g.DoubleDown(); err == nil {
			bet *= 2
		}
	default:
		return bet, nil, fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		if errors.Is(err, blackjack.ErrDeckExhausted) {
			return bet, nil, fmt.Errorf("%w: %v", casino.ErrAborted, err)
		}
		return bet, nil, err
	}

	if !g.Over {
		return bet, nil, nil
	}
	text, outcome := g.CheckWinner()
	result := casino.SettleBlackjack(outcome, bet, text)
	return bet, &result, nil
}

// highLowTable tracks the per-round phase on top of the engine: result is
// nil while a guess is pending and holds the outcome once it resolves.
type highLowTable struct {
	game   *highlow.Game
	result *highlow.RoundResult
}

func (t *highLowTable) view(bet int64) (string, *tele.ReplyMarkup) {
	g := t.game
	var b strings.Builder
	fmt.Fprintf(&b, "🎴 High-Low (bet %d)\n\n", bet)
	fmt.Fprintf(&b, "Dealer shows: %s\n", g.DealerCard)

	if t.result == nil && !g.Over {
		b.WriteString("Your card: 🂠\n")
		fmt.Fprintf(&b, "\nPot: %d · Streak: %d\n", g.Pot(), g.Streak)
		b.WriteString("Is your card higher or lower?")
		markup := &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{{
			{Text: "⬆️ Higher", Data: EncodeCallback("higher", "")},
			{Text: "⬇️ Lower", Data: EncodeCallback("lower", "")},
		}}}
		return b.String(), markup
	}

	fmt.Fprintf(&b, "Your card: %s\n", g.PlayerCard)

	if g.Over {
		if g.Pot() > 0 {
			fmt.Fprintf(&b, "\n💰 Cashed out %d gold after a streak of %d", g.Pot(), g.Streak)
		} else {
			b.WriteString("\n😢 Wrong! The pot is gone")
		}
		return b.String(), nil
	}

	if *t.result == highlow.Tie {
		fmt.Fprintf(&b, "\n😐 Tie. Pot stays at %d · Streak: %d", g.Pot(), g.Streak)
	} else {
		fmt.Fprintf(&b, "\n📈 Correct! Pot is now %d · Streak: %d", g.Pot(), g.Streak)
	}
	markup := &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{{
		{Text: "💰 Cash Out", Data: EncodeCallback("cashout", "")},
		{Text: "▶️ Continue", Data: EncodeCallback("continue", "")},
	}}}
	return b.String(), markup
}

func (t *highLowTable) move(action string, bet int64) (int64, *casino.Settlement, error) {
	switch action {
	case "higher", "lower":
		if t.result != nil {
			return bet, nil, errors.New("round already resolved")
		}
		r := t.game.Guess(action == "higher")
		t.result = &r
		if r == highlow.Loss {
			result := casino.SettleHighLow(0, bet, "😢 Wrong! The pot is gone")
			return bet, &result, nil
		}
		return bet, nil, nil

	case "continue":
		if err := t.game.Advance(); err != nil {
			if errors.Is(err, highlow.ErrDeckExhausted) {
				return bet, nil, fmt.Errorf("%w: %v", casino.ErrAborted, err)
			}
			return bet, nil, err
		}
		t.result = nil
		return bet, nil, nil

	case "cashout":
		pot, err := t.game.CashOut()
		if err != nil {
			return bet, nil, err
		}
		text := fmt.Sprintf("💰 Cashed out %d gold after a streak of %d", pot, t.game.Streak)
		result := casino.SettleHighLow(pot, bet, text)
		return bet, &result, nil

	default:
		return bet, nil, fmt.Errorf("unknown action %q", action)
	}
}

// slotsTable tracks the reel animation: current is nil before the spin and
// holds the visible frame afterwards. The wager is kept here so the frame
// renders running inside the spin move never call back into the gate, which
// holds its own lock for the duration of the move.
type slotsTable struct {
	machine *slots.Machine
	frames  int
	bet     int64
	current *slots.Triple
	done    bool
	sess    *tableSession
}

func (t *slotsTable) view() (string, *tele.ReplyMarkup) {
	var b strings.Builder
	fmt.Fprintf(&b, "🎰 Slots (bet %d)\n\n", t.bet)

	if t.current == nil {
		b.WriteString("🟦 🟦 🟦")
		markup := &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{{
			{Text: "🎰 Spin", Data: EncodeCallback("spin", "")},
		}}}
		return b.String(), markup
	}

	b.WriteString(slots.Render(*t.current))
	if t.done {
		b.WriteString("\n\n" + slotsResultText(slots.Evaluate(*t.current)))
	}
	return b.String(), nil
}

func (t *slotsTable) move(action string, bet int64) (int64, *casino.Settlement, error) {
	if action != "spin" {
		return bet, nil, fmt.Errorf("unknown action %q", action)
	}
	if t.done {
		return bet, nil, errors.New("already spun")
	}

	spins := t.machine.Spin(t.frames)
	for i := range spins[:len(spins)-1] {
		t.current = &spins[i]
		t.animate()
		time.Sleep(slotFrameDelay)
	}

	final := spins[len(spins)-1]
	t.current = &final
	t.done = true

	multiplier := slots.Evaluate(final)
	result := casino.SettleSlots(multiplier, bet, slotsResultText(multiplier))
	return bet, &result, nil
}

// animate redraws the message with the in-flight frame, keyboard removed.
func (t *slotsTable) animate() {
	t.sess.mu.Lock()
	defer t.sess.mu.Unlock()
	text, _ := t.sess.view()
	t.sess.edit(text, nil)
}

func slotsResultText(multiplier int) string {
	switch multiplier {
	case slots.TripleMatch:
		return "🎊 Jackpot! Three of a kind pays 3x"
	case slots.DoubleMatch:
		return "🎉 Two in a row pays 2x"
	default:
		return "😢 No match"
	}
}
