// Package deck provides the playing-card primitives shared by the casino
// card games: a shuffled 52-card deck and the scoring rules the games use.
package deck

import (
	"fmt"
	"math/rand"
)

// Suit is one of the four card suits.
type Suit string

// The four suits in display order.
const (
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
	Spades   Suit = "♠"
)

// Suits lists all suits in a stable order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks lists all ranks in ascending order.
var Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Card is a single playing card. Identity beyond rank only matters for
// display.
type Card struct {
	Rank string
	Suit Suit
}

// String formats the card for display, e.g. "A ♠".
func (c Card) String() string {
	return fmt.Sprintf("%s %s", c.Rank, c.Suit)
}

// Deck is an ordered sequence of cards consumed from the top.
type Deck struct {
	cards []Card
}

// NewShuffled creates a full 52-card deck in uniform random order.
func NewShuffled() *Deck {
	cards := make([]Card, 0, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// NewStacked creates a deck dealing the given cards in order. Games accept a
// stacked deck so tests can drive deterministic rounds.
func NewStacked(cards ...Card) *Deck {
	// Deal consumes from the back, so store in reverse.
	stacked := make([]Card, len(cards))
	for i, c := range cards {
		stacked[len(cards)-1-i] = c
	}
	return &Deck{cards: stacked}
}

// Deal removes and returns the top card. The second return value is false
// when the deck is exhausted.
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
