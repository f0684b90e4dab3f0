// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gold-casino-bot/internal/casino"
	"gold-casino-bot/internal/model"
	"gold-casino-bot/internal/pkg/lock"
	"gold-casino-bot/internal/repository"
)

// Common errors for economy operations.
var (
	ErrBetOutOfRange    = errors.New("bet out of range")
	ErrInsufficientGold = errors.New("not enough gold")
)

// lockWait bounds how long a gold grant waits for a user's lock. A live
// casino game holds the lock for its whole duration, so grants fail fast
// with lock.ErrLockTimeout instead of parking until the game ends.
const lockWait = 3 * time.Second

// Stake is a validated wager, produced before a game starts.
type Stake struct {
	Bet       int64
	CanDouble bool
}

// EconomyService handles gold balances and casino settlement.
type EconomyService struct {
	goldRepo  *repository.GoldRepository
	statsRepo *repository.StatsRepository
	userLock  *lock.UserLock
}

// NewEconomyService creates a new EconomyService instance.
func NewEconomyService(
	goldRepo *repository.GoldRepository,
	statsRepo *repository.StatsRepository,
	userLock *lock.UserLock,
) *EconomyService {
	return &EconomyService{
		goldRepo:  goldRepo,
		statsRepo: statsRepo,
		userLock:  userLock,
	}
}

// GetGold returns a user's gold balance.
func (s *EconomyService) GetGold(ctx context.Context, userID int64) (int64, error) {
	return s.goldRepo.Get(ctx, userID)
}

// Grant credits gold to a user and returns the new balance. Fails with
// lock.ErrLockTimeout while the user has a game running.
func (s *EconomyService) Grant(ctx context.Context, userID int64, amount int64) (int64, error) {
	var gold int64
	err := s.userLock.WithLockContext(ctx, userID, lockWait, func() error {
		var err error
		gold, err = s.goldRepo.Add(ctx, userID, amount)
		return err
	})
	return gold, err
}

// Stake validates a wager before a game starts. The bet must fall inside
// [minBet, maxBet] and the user must be able to cover it. CanDouble reports
// whether the balance also covers a doubled wager.
//
// The caller must already hold the user's lock for the duration of the game;
// no gold moves until Settle.
func (s *EconomyService) Stake(ctx context.Context, userID int64, bet, minBet, maxBet int64) (Stake, error) {
	if bet < minBet || bet > maxBet {
		return Stake{}, ErrBetOutOfRange
	}

	gold, err := s.goldRepo.Get(ctx, userID)
	if err != nil {
		return Stake{}, err
	}
	if gold < bet {
		return Stake{}, ErrInsufficientGold
	}

	return Stake{Bet: bet, CanDouble: gold >= bet*2}, nil
}

// Settle applies a finished game's gold movements and records them on the
// leaderboard. The caller must hold the user's lock, the same one it took
// before Stake.
func (s *EconomyService) Settle(ctx context.Context, userID int64, result casino.Settlement) (int64, error) {
	gold, err := s.goldRepo.Deduct(ctx, userID, result.Spent)
	if err != nil {
		return 0, fmt.Errorf("failed to collect stake: %w", err)
	}

	if result.Earned > 0 {
		gold, err = s.goldRepo.Add(ctx, userID, result.Earned)
		if err != nil {
			return 0, fmt.Errorf("failed to pay out: %w", err)
		}
	}

	if err := s.statsRepo.RecordOutcome(ctx, userID, result.Spent, result.Earned); err != nil {
		return 0, err
	}

	return gold, nil
}

// Leaderboard returns the top users by lifetime gross casino earnings.
func (s *EconomyService) Leaderboard(ctx context.Context, limit int) ([]*model.CasinoStats, error) {
	return s.statsRepo.GetTopEarners(ctx, limit)
}
