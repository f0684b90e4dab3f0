package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestNewShuffled_FullDeck verifies a fresh deck holds all 52 distinct cards.
func TestNewShuffled_FullDeck(t *testing.T) {
	d := NewShuffled()
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for {
		card, ok := d.Deal()
		if !ok {
			break
		}
		assert.False(t, seen[card], "duplicate card %s", card)
		seen[card] = true
	}
	assert.Len(t, seen, 52)
}

func TestDeal_Exhaustion(t *testing.T) {
	d := NewStacked(Card{Rank: "A", Suit: Spades})

	card, ok := d.Deal()
	require.True(t, ok)
	assert.Equal(t, "A", card.Rank)

	_, ok = d.Deal()
	assert.False(t, ok)
	assert.Equal(t, 0, d.Remaining())

	// Dealing from an empty deck stays a no-op.
	_, ok = d.Deal()
	assert.False(t, ok)
}

func TestNewStacked_DealsInOrder(t *testing.T) {
	d := NewStacked(
		Card{Rank: "2", Suit: Hearts},
		Card{Rank: "K", Suit: Clubs},
	)

	first, ok := d.Deal()
	require.True(t, ok)
	second, ok := d.Deal()
	require.True(t, ok)

	assert.Equal(t, Card{Rank: "2", Suit: Hearts}, first)
	assert.Equal(t, Card{Rank: "K", Suit: Clubs}, second)
}

// TestDealProperty checks that dealing never invents or loses cards.
func TestDealProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := NewShuffled()
		deals := rapid.IntRange(0, 52).Draw(t, "deals")

		for i := 0; i < deals; i++ {
			_, ok := d.Deal()
			if !ok {
				t.Fatalf("deck exhausted after %d deals", i)
			}
		}

		if got := d.Remaining(); got != 52-deals {
			t.Fatalf("expected %d cards remaining, got %d", 52-deals, got)
		}
	})
}
