// Package highlow implements the high-low streak game: guess whether your
// hidden card outranks the dealer's, compound the pot 25% per win, cash out
// any time.
package highlow

import (
	"errors"

	"github.com/shopspring/decimal"

	"gold-casino-bot/internal/casino/deck"
)

// Errors for high-low moves.
var (
	// ErrDeckExhausted is returned when a deal is requested with no cards
	// left. Unreachable over realistic streak lengths but fatal when hit.
	ErrDeckExhausted = errors.New("deck is exhausted")

	// ErrRoundPending is returned when Advance or CashOut is requested
	// before the current guess has been made.
	ErrRoundPending = errors.New("guess the current card first")
)

// RoundResult is the outcome of a single guess.
type RoundResult int

const (
	Loss RoundResult = 0
	Win  RoundResult = 1
	Tie  RoundResult = 2
)

// potStep is the compounding factor applied to the pot on every win.
var potStep = decimal.NewFromFloat(1.25)

// Game is one high-low session. The pot stays an exact decimal until cash
// out so repeated 1.25x steps never accumulate rounding error. Not safe for
// concurrent use; the owning gate serializes moves.
type Game struct {
	deck       *deck.Deck
	PlayerCard deck.Card // face down until the guess resolves
	DealerCard deck.Card // face up

	pot     decimal.Decimal
	Streak  int
	Over    bool
	guessed bool
}

// New starts a session on a freshly shuffled deck with the wager as the
// opening pot.
func New(bet int64) (*Game, error) {
	return NewWithDeck(deck.NewShuffled(), bet)
}

// NewWithDeck starts a session on the provided deck. Tests use a stacked
// deck to script the card order: player first, then dealer.
func NewWithDeck(d *deck.Deck, bet int64) (*Game, error) {
	g := &Game{deck: d, pot: decimal.NewFromInt(bet)}
	var ok bool
	if g.PlayerCard, ok = d.Deal(); !ok {
		return nil, ErrDeckExhausted
	}
	if g.DealerCard, ok = d.Deal(); !ok {
		return nil, ErrDeckExhausted
	}
	return g, nil
}

// Pot returns the current pot truncated to whole gold, for display. The
// exact value keeps compounding underneath.
func (g *Game) Pot() int64 {
	return g.pot.IntPart()
}

// Guess resolves the current round. Equal ranks tie regardless of the
// guessed direction; a tie changes neither pot nor streak but still offers
// continue or cash out. A win compounds the pot by 25% and extends the
// streak. A loss zeroes the pot and ends the session on the spot.
func (g *Game) Guess(higher bool) RoundResult {
	playerRank := deck.HighLowRank(g.PlayerCard)
	dealerRank := deck.HighLowRank(g.DealerCard)
	g.guessed = true

	if playerRank == dealerRank {
		return Tie
	}

	won := (higher && playerRank > dealerRank) || (!higher && dealerRank > playerRank)
	if !won {
		g.pot = decimal.Zero
		g.Over = true
		return Loss
	}

	g.pot = g.pot.Mul(potStep)
	g.Streak++
	return Win
}

// Advance starts the next round after a win or tie: the player's card
// becomes the dealer's face-up card and a new face-down card is dealt.
func (g *Game) Advance() error {
	if !g.guessed {
		return ErrRoundPending
	}
	g.DealerCard = g.PlayerCard
	card, ok := g.deck.Deal()
	if !ok {
		return ErrDeckExhausted
	}
	g.PlayerCard = card
	g.guessed = false
	return nil
}

// CashOut ends the session and fixes the pot, truncated to whole gold.
// 100 compounded three times is 195.3125 and pays 195.
func (g *Game) CashOut() (int64, error) {
	if !g.guessed {
		return 0, ErrRoundPending
	}
	pot := g.pot.IntPart()
	g.pot = decimal.NewFromInt(pot)
	g.Over = true
	return pot, nil
}
