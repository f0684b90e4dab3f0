// Package slots implements the slot machine: one spin of three reels over
// five symbols, with an animation of intermediate frames.
package slots

import "math/rand"

// Multiplier codes returned by Evaluate.
const (
	TripleMatch = 3  // all three symbols match: pays 3x
	DoubleMatch = 2  // two adjacent symbols match: pays 2x
	NoMatch     = -1 // bet is lost
)

// Symbols are the reel faces, indexed by the values in a Triple.
var Symbols = []string{"🍒", "🍋", "🍉", "🍇", "🍎"}

// DefaultFrames is how many animation frames a spin produces.
const DefaultFrames = 15

// Triple is one reel outcome: three symbol indices.
type Triple [3]int

// Machine is the slot machine. Each game is exactly one spin; the machine
// keeps no state between spins.
type Machine struct{}

// New creates a slot machine.
func New() *Machine {
	return &Machine{}
}

// Spin produces frameCount independent triples. Only the last one decides
// the payout; the rest exist for the spin animation.
func (m *Machine) Spin(frameCount int) []Triple {
	if frameCount < 1 {
		frameCount = 1
	}
	spins := make([]Triple, frameCount)
	for i := range spins {
		for r := 0; r < 3; r++ {
			spins[i][r] = rand.Intn(len(Symbols))
		}
	}
	return spins
}

// Evaluate returns the payout multiplier for a triple. Two matching symbols
// only count when adjacent: the first pair or the last pair. Matching end
// symbols around a different middle pay nothing.
func Evaluate(t Triple) int {
	if t[0] == t[1] && t[1] == t[2] {
		return TripleMatch
	}
	if t[0] == t[1] || t[1] == t[2] {
		return DoubleMatch
	}
	return NoMatch
}

// Render formats a triple as its symbol faces for display.
func Render(t Triple) string {
	return Symbols[t[0]] + " " + Symbols[t[1]] + " " + Symbols[t[2]]
}
