// Package casino holds the pieces shared by the interactive casino games:
// the gate that binds a game to a single player and wager, and the
// settlement math that turns a finished game into gold movements.
package casino

import (
	"context"
	"errors"
	"sync"
)

// Errors reported back to the actor. Neither mutates game state.
var (
	// ErrNotYourGame is returned when someone other than the bound player
	// presses a game button.
	ErrNotYourGame = errors.New("this is not your game")

	// ErrGameOver is returned for actions submitted after the game reached
	// its terminal state.
	ErrGameOver = errors.New("game is already over")

	// ErrAborted marks errors that end the game for good, such as an
	// exhausted deck. A move returning an error that wraps ErrAborted
	// resolves the gate with that error; any other error is a rejection
	// reported to the actor with the game state untouched.
	ErrAborted = errors.New("game cannot continue")
)

// Move mutates the underlying game while the gate is held. It receives the
// current wager and returns the wager after the move (changed only by a
// double-down) plus a non-nil settlement once the game is terminal.
// An error wrapping ErrAborted releases the waiting caller with that error;
// any other error rejects the move and leaves the game untouched.
type Move func(bet int64) (newBet int64, result *Settlement, err error)

// RenderFunc displays the current game state. It is called after every
// accepted move; render failures are the renderer's concern and are never
// retried by the gate.
type RenderFunc func()

// Gate pairs one game with one authorized player and one wager. It
// serializes incoming moves, rejects moves from anyone but the bound player,
// and resolves its outcome exactly once when the game ends. The gate never
// touches the gold ledger; that happens in the caller after Await returns.
type Gate struct {
	player int64
	render RenderFunc

	mu   sync.Mutex
	bet  int64
	over bool

	once   sync.Once
	done   chan struct{}
	result Settlement
	err    error
}

// NewGate creates a gate bound to the given player and initial wager.
// render may be nil for games without a visible board.
func NewGate(player int64, bet int64, render RenderFunc) *Gate {
	return &Gate{
		player: player,
		render: render,
		bet:    bet,
		done:   make(chan struct{}),
	}
}

// Player returns the bound player's ID.
func (g *Gate) Player() int64 {
	return g.player
}

// Bet returns the current wager. It reflects a double-down once the
// corresponding move has been accepted.
func (g *Gate) Bet() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bet
}

// Submit applies a move on behalf of actor. Moves from anyone but the bound
// player are rejected with ErrNotYourGame and leave the game untouched.
// Moves after the terminal state are rejected with ErrGameOver. Accepted
// moves run one at a time; after each one the gate re-renders, and if the
// move ended the game the outcome future resolves exactly once.
func (g *Gate) Submit(actor int64, move Move) error {
	if actor != g.player {
		return ErrNotYourGame
	}

	g.mu.Lock()
	if g.over {
		g.mu.Unlock()
		return ErrGameOver
	}

	newBet, result, err := move(g.bet)
	if err != nil {
		if errors.Is(err, ErrAborted) {
			g.over = true
			g.mu.Unlock()
			g.resolve(Settlement{}, err)
			return err
		}
		// Rejected move: report to the actor, state unchanged.
		g.mu.Unlock()
		return err
	}
	g.bet = newBet
	if result != nil {
		g.over = true
	}
	g.mu.Unlock()

	if g.render != nil {
		g.render()
	}
	if result != nil {
		g.resolve(*result, nil)
	}
	return nil
}

// resolve settles the outcome future. Safe to call more than once; only the
// first call wins.
func (g *Gate) resolve(result Settlement, err error) {
	g.once.Do(func() {
		g.result = result
		g.err = err
		close(g.done)
	})
}

// Await blocks until the game resolves or ctx is cancelled. Cancelling the
// context is how an owner abandons a game without leaking the waiter.
func (g *Gate) Await(ctx context.Context) (Settlement, error) {
	select {
	case <-g.done:
		return g.result, g.err
	case <-ctx.Done():
		return Settlement{}, ctx.Err()
	}
}
