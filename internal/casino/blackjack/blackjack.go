// Package blackjack implements the single-player blackjack table: player
// versus a dealer that draws to 17.
package blackjack

import (
	"errors"
	"fmt"

	"gold-casino-bot/internal/casino/deck"
)

// Errors for blackjack moves.
var (
	// ErrDoubleNotAllowed is returned when the player cannot afford a
	// double-down or has already taken a card.
	ErrDoubleNotAllowed = errors.New("double down is not allowed")

	// ErrDeckExhausted is returned when a deal is requested with no cards
	// left. Unreachable in a normal game but fatal when it happens.
	ErrDeckExhausted = errors.New("deck is exhausted")
)

// Outcome is the result code of a finished (or running) game.
type Outcome int

// Outcome codes, in the order CheckWinner evaluates them.
const (
	PlayerWins      Outcome = 0
	DealerWins      Outcome = 1
	Push            Outcome = 2
	PlayerBlackjack Outcome = 3
	InProgress      Outcome = -1
)

// Game is one blackjack round. It is not safe for concurrent use; the
// owning gate serializes moves.
type Game struct {
	deck       *deck.Deck
	PlayerHand []deck.Card
	DealerHand []deck.Card

	PlayerStanding bool
	Over           bool
	CanDouble      bool
	Doubled        bool
}

// New creates a game on a freshly shuffled deck and deals two cards to each
// side. canDouble reflects whether the player can afford to double the
// wager; the table itself does not know about balances.
func New(canDouble bool) (*Game, error) {
	return NewWithDeck(deck.NewShuffled(), canDouble)
}

// NewWithDeck creates a game on the provided deck. Tests use a stacked deck
// to drive deterministic rounds.
func NewWithDeck(d *deck.Deck, canDouble bool) (*Game, error) {
	g := &Game{deck: d, CanDouble: canDouble}
	for i := 0; i < 2; i++ {
		if err := g.hit(&g.PlayerHand); err != nil {
			return nil, err
		}
		if err := g.hit(&g.DealerHand); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// hit deals one card onto the given hand.
func (g *Game) hit(hand *[]deck.Card) error {
	card, ok := g.deck.Deal()
	if !ok {
		return ErrDeckExhausted
	}
	*hand = append(*hand, card)
	return nil
}

// PlayerScore returns the current value of the player's hand.
func (g *Game) PlayerScore() int {
	return deck.BlackjackScore(g.PlayerHand)
}

// DealerScore returns the current value of the dealer's hand.
func (g *Game) DealerScore() int {
	return deck.BlackjackScore(g.DealerHand)
}

// Hit deals one card to the player. Reaching 21 or busting forces a stand
// and ends the round.
func (g *Game) Hit() error {
	if err := g.hit(&g.PlayerHand); err != nil {
		return err
	}
	if g.PlayerScore() >= 21 {
		g.PlayerStanding = true
		g.Over = true
	}
	return nil
}

// Stand ends the player's turn. The dealer draws until reaching 17 or
// better, then the round is over.
func (g *Game) Stand() error {
	g.PlayerStanding = true
	if err := g.playDealer(); err != nil {
		return err
	}
	g.Over = true
	return nil
}

// DoubleDown takes exactly one more card, then stands. Valid only while the
// player holds the initial two cards and CanDouble is set; the caller
// doubles the wager alongside a successful double.
func (g *Game) DoubleDown() error {
	if !g.CanDouble {
		return ErrDoubleNotAllowed
	}
	if len(g.PlayerHand) != 2 {
		return fmt.Errorf("%w: already took a card", ErrDoubleNotAllowed)
	}
	if err := g.hit(&g.PlayerHand); err != nil {
		return err
	}
	g.Doubled = true
	g.PlayerStanding = true
	if err := g.playDealer(); err != nil {
		return err
	}
	g.Over = true
	return nil
}

// playDealer runs the dealer's fixed strategy: hit on anything under 17,
// stand on 17 and above, soft or hard.
func (g *Game) playDealer() error {
	for g.DealerScore() < 17 {
		if err := g.hit(&g.DealerHand); err != nil {
			return err
		}
	}
	return nil
}

// CheckWinner evaluates the table. The order matters: a player natural is
// checked before the dealer's, so a double natural goes to the player.
func (g *Game) CheckWinner() (string, Outcome) {
	playerScore := g.PlayerScore()
	dealerScore := g.DealerScore()

	switch {
	case playerScore == 21 && len(g.PlayerHand) == 2:
		return "Player hits Blackjack! Player wins!", PlayerBlackjack
	case playerScore > 21:
		return "Player busts! Dealer wins.", DealerWins
	case dealerScore > 21:
		return "Dealer busts! Player wins!", PlayerWins
	case dealerScore == 21 && len(g.DealerHand) == 2:
		return "Dealer hits Blackjack! Dealer wins!", DealerWins
	case g.PlayerStanding:
		if playerScore > dealerScore {
			return "Player wins!", PlayerWins
		}
		if dealerScore > playerScore {
			return "Dealer wins!", DealerWins
		}
		return "It's a push! Your bet is refunded.", Push
	}

	return "Game still in progress.", InProgress
}
