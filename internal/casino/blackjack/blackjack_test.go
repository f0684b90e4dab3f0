package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold-casino-bot/internal/casino/deck"
)

func card(rank string) deck.Card {
	return deck.Card{Rank: rank, Suit: deck.Spades}
}

// newGame stacks the deck so the deal order is player, dealer, player,
// dealer, then any extra cards in draw order.
func newGame(t *testing.T, canDouble bool, ranks ...string) *Game {
	t.Helper()
	cards := make([]deck.Card, 0, len(ranks))
	for _, r := range ranks {
		cards = append(cards, card(r))
	}
	g, err := NewWithDeck(deck.NewStacked(cards...), canDouble)
	require.NoError(t, err)
	return g
}

func TestNewWithDeck_DealsTwoEach(t *testing.T) {
	g := newGame(t, false, "10", "5", "9", "6")

	require.Len(t, g.PlayerHand, 2)
	require.Len(t, g.DealerHand, 2)
	assert.Equal(t, 19, g.PlayerScore())
	assert.Equal(t, 11, g.DealerScore())
	assert.False(t, g.Over)
}

func TestHit_Bust(t *testing.T) {
	g := newGame(t, false, "10", "5", "9", "6", "K")

	require.NoError(t, g.Hit())

	assert.True(t, g.Over)
	assert.True(t, g.PlayerStanding)
	assert.Equal(t, 29, g.PlayerScore())

	_, outcome := g.CheckWinner()
	assert.Equal(t, DealerWins, outcome)
}

func TestHit_ExactlyTwentyOneForcesStand(t *testing.T) {
	g := newGame(t, false, "10", "5", "9", "6", "2")

	require.NoError(t, g.Hit())

	assert.True(t, g.Over)
	assert.Equal(t, 21, g.PlayerScore())

	// The dealer never drew: forced stand beats the 11 on the table.
	_, outcome := g.CheckWinner()
	assert.Equal(t, PlayerWins, outcome)
}

func TestStand_DealerDrawsToSeventeen(t *testing.T) {
	// Player 19, dealer 16, next card a 3 for exactly 19: push.
	g := newGame(t, false, "10", "10", "9", "6", "3")

	require.NoError(t, g.Stand())

	assert.True(t, g.Over)
	assert.Equal(t, 19, g.DealerScore())

	_, outcome := g.CheckWinner()
	assert.Equal(t, Push, outcome)
}

func TestStand_DealerStopsAtSeventeenOrAbove(t *testing.T) {
	tests := []struct {
		name   string
		dealer []string
		extra  []string
		score  int
	}{
		{"already 17", []string{"10", "7"}, nil, 17},
		{"soft 17 stands", []string{"A", "6"}, nil, 17},
		{"draws once to 20", []string{"10", "6"}, []string{"4"}, 20},
		{"draws and busts", []string{"10", "6"}, []string{"K"}, 26},
		{"multiple draws", []string{"2", "3"}, []string{"4", "5", "6"}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranks := []string{"10", tt.dealer[0], "9", tt.dealer[1]}
			ranks = append(ranks, tt.extra...)
			g := newGame(t, false, ranks...)

			require.NoError(t, g.Stand())
			assert.Equal(t, tt.score, g.DealerScore())
			assert.GreaterOrEqual(t, g.DealerScore(), 17)
		})
	}
}

func TestCheckWinner_Order(t *testing.T) {
	tests := []struct {
		name    string
		ranks   []string
		play    func(*Game) error
		outcome Outcome
	}{
		{
			// Both sides dealt naturals: the player's is checked first.
			name:    "double natural favors player",
			ranks:   []string{"A", "A", "K", "K"},
			play:    nil,
			outcome: PlayerBlackjack,
		},
		{
			name:    "player natural",
			ranks:   []string{"A", "9", "K", "8"},
			play:    nil,
			outcome: PlayerBlackjack,
		},
		{
			name:    "dealer natural beats standing twenty",
			ranks:   []string{"K", "A", "Q", "K"},
			play:    func(g *Game) error { return g.Stand() },
			outcome: DealerWins,
		},
		{
			name:    "dealer bust",
			ranks:   []string{"10", "10", "8", "6", "K"},
			play:    func(g *Game) error { return g.Stand() },
			outcome: PlayerWins,
		},
		{
			name:    "higher score wins",
			ranks:   []string{"10", "10", "9", "8"},
			play:    func(g *Game) error { return g.Stand() },
			outcome: PlayerWins,
		},
		{
			name:    "in progress before stand",
			ranks:   []string{"10", "10", "9", "7"},
			play:    nil,
			outcome: InProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, false, tt.ranks...)
			if tt.play != nil {
				require.NoError(t, tt.play(g))
			}
			_, outcome := g.CheckWinner()
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}

func TestDoubleDown(t *testing.T) {
	// Player 11 doubles into a 10 for 21 (three cards, no natural);
	// dealer sits on 17.
	g := newGame(t, true, "6", "10", "5", "7", "K")

	require.NoError(t, g.DoubleDown())

	assert.True(t, g.Doubled)
	assert.True(t, g.Over)
	require.Len(t, g.PlayerHand, 3)
	assert.Equal(t, 21, g.PlayerScore())

	_, outcome := g.CheckWinner()
	assert.Equal(t, PlayerWins, outcome)
}

func TestDoubleDown_Rejected(t *testing.T) {
	g := newGame(t, false, "6", "10", "5", "7")

	err := g.DoubleDown()
	assert.ErrorIs(t, err, ErrDoubleNotAllowed)

	// Rejection leaves the table untouched.
	assert.Len(t, g.PlayerHand, 2)
	assert.False(t, g.Doubled)
	assert.False(t, g.Over)
}

func TestDoubleDown_RejectedAfterHit(t *testing.T) {
	g := newGame(t, true, "2", "10", "5", "7", "3")

	require.NoError(t, g.Hit())
	require.False(t, g.Over)

	err := g.DoubleDown()
	assert.ErrorIs(t, err, ErrDoubleNotAllowed)
	assert.False(t, g.Doubled)
}

func TestHit_DeckExhausted(t *testing.T) {
	g := newGame(t, false, "10", "5", "9", "6")

	err := g.Hit()
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

// TestEndToEnd_SeededStand replays the fixed-deck scenario: player 19,
// dealer 16 drawing one card under the 17 rule.
func TestEndToEnd_SeededStand(t *testing.T) {
	tests := []struct {
		name    string
		drawn   string
		outcome Outcome
	}{
		{"dealer draws ace for 17 and loses", "A", PlayerWins},
		{"dealer draws to 19 pushes", "3", Push},
		{"dealer draws to 20 wins", "4", DealerWins},
		{"dealer busts", "10", PlayerWins},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, false, "10", "10", "9", "6", tt.drawn)
			require.Equal(t, 19, g.PlayerScore())
			require.Equal(t, 16, g.DealerScore())

			require.NoError(t, g.Stand())
			_, outcome := g.CheckWinner()
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}
