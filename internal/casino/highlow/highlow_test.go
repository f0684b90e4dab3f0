package highlow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold-casino-bot/internal/casino/deck"
)

func card(rank string) deck.Card {
	return deck.Card{Rank: rank, Suit: deck.Hearts}
}

// newGame stacks the deck: player card first, then dealer card, then the
// replacement cards dealt by Advance in order.
func newGame(t *testing.T, bet int64, ranks ...string) *Game {
	t.Helper()
	cards := make([]deck.Card, 0, len(ranks))
	for _, r := range ranks {
		cards = append(cards, card(r))
	}
	g, err := NewWithDeck(deck.NewStacked(cards...), bet)
	require.NoError(t, err)
	return g
}

func TestGuess(t *testing.T) {
	tests := []struct {
		name   string
		player string
		dealer string
		higher bool
		want   RoundResult
	}{
		{"higher and is higher", "K", "5", true, Win},
		{"higher but is lower", "3", "J", true, Loss},
		{"lower and is lower", "4", "Q", false, Win},
		{"lower but is higher", "A", "2", false, Loss},
		{"tie guessing higher", "7", "7", true, Tie},
		{"tie guessing lower", "7", "7", false, Tie},
		{"ace beats king", "A", "K", true, Win},
		{"jack below queen", "J", "Q", true, Loss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, 100, tt.player, tt.dealer)
			assert.Equal(t, tt.want, g.Guess(tt.higher))
		})
	}
}

func TestGuess_WinCompoundsPotAndStreak(t *testing.T) {
	g := newGame(t, 100, "K", "5")

	require.Equal(t, Win, g.Guess(true))

	assert.Equal(t, 1, g.Streak)
	assert.Equal(t, int64(125), g.Pot())
	assert.False(t, g.Over)
}

func TestGuess_TieLeavesPotAndStreak(t *testing.T) {
	g := newGame(t, 100, "7", "7", "9")

	require.Equal(t, Tie, g.Guess(true))

	assert.Equal(t, 0, g.Streak)
	assert.Equal(t, int64(100), g.Pot())
	assert.False(t, g.Over)

	// A tie still lets the session continue.
	require.NoError(t, g.Advance())
	assert.Equal(t, "7", g.DealerCard.Rank)
	assert.Equal(t, "9", g.PlayerCard.Rank)
}

func TestGuess_LossEndsSession(t *testing.T) {
	g := newGame(t, 100, "3", "J")

	require.Equal(t, Loss, g.Guess(true))

	assert.True(t, g.Over)
	assert.Equal(t, int64(0), g.Pot())
}

// TestPotCompounding verifies three straight wins grow 100 into 195.3125
// exactly, paying 195 on cash out rather than a rounded 196.
func TestPotCompounding(t *testing.T) {
	g := newGame(t, 100, "5", "2", "8", "J")

	require.Equal(t, Win, g.Guess(true)) // 5 > 2
	require.NoError(t, g.Advance())
	require.Equal(t, Win, g.Guess(true)) // 8 > 5
	require.NoError(t, g.Advance())
	require.Equal(t, Win, g.Guess(true)) // J > 8

	assert.Equal(t, 3, g.Streak)
	// Display truncates the running 195.3125.
	assert.Equal(t, int64(195), g.Pot())

	pot, err := g.CashOut()
	require.NoError(t, err)
	assert.Equal(t, int64(195), pot)
	assert.True(t, g.Over)
}

// TestPotCompounding_NoEarlyTruncation drives a pot through a fractional
// intermediate value that would settle wrong if truncated per round.
func TestPotCompounding_NoEarlyTruncation(t *testing.T) {
	// 10 -> 12.5 -> 15.625: truncating after the first win would give
	// 12 * 1.25 = 15 instead.
	g := newGame(t, 10, "5", "2", "8")

	require.Equal(t, Win, g.Guess(true))
	require.NoError(t, g.Advance())
	require.Equal(t, Win, g.Guess(true))

	pot, err := g.CashOut()
	require.NoError(t, err)
	assert.Equal(t, int64(15), pot)
}

func TestCashOut_FinalPotImmutable(t *testing.T) {
	g := newGame(t, 100, "K", "5")

	require.Equal(t, Win, g.Guess(true))
	pot, err := g.CashOut()
	require.NoError(t, err)
	require.Equal(t, int64(125), pot)

	// The fixed pot does not move again.
	assert.Equal(t, int64(125), g.Pot())
}

func TestAdvance_RotatesCards(t *testing.T) {
	g := newGame(t, 100, "9", "4", "Q")

	require.Equal(t, Win, g.Guess(true))
	require.NoError(t, g.Advance())

	assert.Equal(t, "9", g.DealerCard.Rank)
	assert.Equal(t, "Q", g.PlayerCard.Rank)
}

func TestAdvance_BeforeGuessRejected(t *testing.T) {
	g := newGame(t, 100, "9", "4")

	assert.ErrorIs(t, g.Advance(), ErrRoundPending)
	assert.Equal(t, "9", g.PlayerCard.Rank)
	assert.Equal(t, "4", g.DealerCard.Rank)
}

func TestAdvance_DeckExhausted(t *testing.T) {
	g := newGame(t, 100, "9", "4")

	require.Equal(t, Win, g.Guess(true))
	assert.ErrorIs(t, g.Advance(), ErrDeckExhausted)
}
