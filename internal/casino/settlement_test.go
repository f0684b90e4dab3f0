package casino

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gold-casino-bot/internal/casino/blackjack"
	"gold-casino-bot/internal/casino/slots"
)

func TestSettleBlackjack(t *testing.T) {
	tests := []struct {
		name    string
		outcome blackjack.Outcome
		bet     int64
		earned  int64
		net     int64
	}{
		{"natural pays three to two", blackjack.PlayerBlackjack, 100, 250, 150},
		{"win pays even money", blackjack.PlayerWins, 100, 200, 100},
		{"push refunds the stake", blackjack.Push, 100, 100, 0},
		{"loss forfeits the stake", blackjack.DealerWins, 100, 0, -100},
		{"doubled win pays on the doubled stake", blackjack.PlayerWins, 200, 400, 200},
		{"doubled loss forfeits the doubled stake", blackjack.DealerWins, 200, 0, -200},
		{"natural truncates odd payouts", blackjack.PlayerBlackjack, 25, 62, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SettleBlackjack(tt.outcome, tt.bet, "result")
			assert.Equal(t, tt.bet, s.Bet)
			assert.Equal(t, tt.bet, s.Spent)
			assert.Equal(t, tt.earned, s.Earned)
			assert.Equal(t, tt.net, s.Net())
			assert.Equal(t, "result", s.Outcome)
		})
	}
}

func TestSettleHighLow(t *testing.T) {
	t.Run("cash out keeps the pot", func(t *testing.T) {
		s := SettleHighLow(195, 100, "cashed out")
		assert.Equal(t, int64(195), s.Earned)
		assert.Equal(t, int64(95), s.Net())
	})

	t.Run("bust loses the stake", func(t *testing.T) {
		s := SettleHighLow(0, 100, "busted")
		assert.Zero(t, s.Earned)
		assert.Equal(t, int64(-100), s.Net())
	})
}

func TestSettleSlots(t *testing.T) {
	tests := []struct {
		name       string
		multiplier int
		bet        int64
		earned     int64
	}{
		{"triple pays three times", slots.TripleMatch, 50, 150},
		{"double pays two times", slots.DoubleMatch, 50, 100},
		{"no match forfeits the bet", slots.NoMatch, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SettleSlots(tt.multiplier, tt.bet, "reels")
			assert.Equal(t, tt.earned, s.Earned)
			assert.Equal(t, tt.bet, s.Spent)
		})
	}
}
