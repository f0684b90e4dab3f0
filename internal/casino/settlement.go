package casino

import (
	"gold-casino-bot/internal/casino/blackjack"
	"gold-casino-bot/internal/casino/slots"
)

// Settlement is the gold movement produced by one finished game. Spent is
// what the player paid to sit down, Earned is the gross amount returned to
// them (winnings and refunds alike). Both feed the casino leaderboard; the
// ledger applies the same numbers.
type Settlement struct {
	Bet     int64  // final wager, after any double-down
	Spent   int64  // gold paid to play
	Earned  int64  // gross gold credited back
	Outcome string // short result line for display
}

// Net is the player's profit or loss for the game.
func (s Settlement) Net() int64 {
	return s.Earned - s.Spent
}

// SettleBlackjack maps a terminal blackjack outcome and wager to gold
// movements. A natural pays 3:2 on top of the returned stake, a regular win
// pays even money, a push refunds the stake. The wager passed in already
// reflects a double-down.
func SettleBlackjack(outcome blackjack.Outcome, bet int64, text string) Settlement {
	s := Settlement{Bet: bet, Spent: bet, Outcome: text}
	switch outcome {
	case blackjack.PlayerBlackjack:
		s.Earned = bet * 5 / 2
	case blackjack.PlayerWins:
		s.Earned = bet * 2
	case blackjack.Push:
		s.Earned = bet
	case blackjack.DealerWins:
		s.Earned = 0
	}
	return s
}

// SettleHighLow maps a finished high-low session to gold movements. The pot
// is already truncated to whole gold; it is zero on a loss.
func SettleHighLow(pot int64, bet int64, text string) Settlement {
	return Settlement{Bet: bet, Spent: bet, Earned: pot, Outcome: text}
}

// SettleSlots maps a final reel multiplier to gold movements. A multiplier
// of slots.NoMatch forfeits the bet.
func SettleSlots(multiplier int, bet int64, text string) Settlement {
	s := Settlement{Bet: bet, Spent: bet, Outcome: text}
	if multiplier != slots.NoMatch {
		s.Earned = int64(multiplier) * bet
	}
	return s
}
