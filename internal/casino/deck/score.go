package deck

import "strconv"

// BlackjackScore computes the blackjack value of a hand. Face cards count 10,
// aces count 11 and are downgraded to 1 one at a time while the total is
// over 21, so a hand like [A, A, 9] scores 21, not 31.
func BlackjackScore(hand []Card) int {
	score := 0
	aces := 0

	for _, card := range hand {
		switch card.Rank {
		case "J", "Q", "K":
			score += 10
		case "A":
			score += 11
			aces++
		default:
			n, _ := strconv.Atoi(card.Rank)
			score += n
		}
	}

	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}

	return score
}

// HighLowRank returns the card's rank for high-low comparison: number cards
// at face value, then J=11, Q=12, K=13 and A=14 (ace high).
func HighLowRank(card Card) int {
	switch card.Rank {
	case "J":
		return 11
	case "Q":
		return 12
	case "K":
		return 13
	case "A":
		return 14
	default:
		n, _ := strconv.Atoi(card.Rank)
		return n
	}
}
