package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func card(rank string) Card {
	return Card{Rank: rank, Suit: Spades}
}

func TestBlackjackScore(t *testing.T) {
	tests := []struct {
		name     string
		ranks    []string
		expected int
	}{
		{"simple numbers", []string{"2", "3"}, 5},
		{"face cards count ten", []string{"J", "Q"}, 20},
		{"natural blackjack", []string{"A", "K"}, 21},
		{"soft ace stays eleven", []string{"A", "5"}, 16},
		{"ace downgrades past 21", []string{"A", "K", "5"}, 16},
		{"two aces one downgrade", []string{"A", "A"}, 12},
		{"two aces with nine", []string{"A", "A", "9"}, 21},
		{"three aces", []string{"A", "A", "A"}, 13},
		{"hard bust", []string{"K", "Q", "5"}, 25},
		{"all aces downgraded", []string{"A", "A", "K", "Q"}, 22},
		{"empty hand", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := make([]Card, 0, len(tt.ranks))
			for _, r := range tt.ranks {
				hand = append(hand, card(r))
			}
			assert.Equal(t, tt.expected, BlackjackScore(hand))
		})
	}
}

// TestBlackjackScore_NeverOverDowngrades verifies a score over 21 means no
// ace is left that could still be downgraded.
func TestBlackjackScore_NeverOverDowngrades(t *testing.T) {
	// [A, A, 9] must land exactly on 21: one ace downgraded, not both.
	hand := []Card{card("A"), card("A"), card("9")}
	assert.Equal(t, 21, BlackjackScore(hand))

	// [A, K, A] is 12: both aces downgraded, nothing further possible.
	hand = []Card{card("A"), card("K"), card("A")}
	assert.Equal(t, 12, BlackjackScore(hand))
}

func TestHighLowRank(t *testing.T) {
	assert.Equal(t, 2, HighLowRank(card("2")))
	assert.Equal(t, 10, HighLowRank(card("10")))
	assert.Equal(t, 11, HighLowRank(card("J")))
	assert.Equal(t, 12, HighLowRank(card("Q")))
	assert.Equal(t, 13, HighLowRank(card("K")))
	assert.Equal(t, 14, HighLowRank(card("A")))

	// Court cards strictly ascend into the ace.
	assert.Less(t, HighLowRank(card("J")), HighLowRank(card("Q")))
	assert.Less(t, HighLowRank(card("Q")), HighLowRank(card("K")))
	assert.Less(t, HighLowRank(card("K")), HighLowRank(card("A")))
}
