package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"gold-casino-bot/internal/catalog"
	"gold-casino-bot/internal/model"
	"gold-casino-bot/internal/pkg/lock"
	"gold-casino-bot/internal/repository"
)

// Common errors for gacha operations.
var (
	ErrRollCountInvalid = errors.New("roll count invalid")
	ErrUnknownItem      = errors.New("unknown item")
	ErrNoHigherRarity   = errors.New("no higher rarity exists")
)

// combineChance is the probability a combine produces a higher-rarity item.
const combineChance = 0.1

// GachaService handles item rolls and combining.
type GachaService struct {
	goldRepo *repository.GoldRepository
	invRepo  *repository.InventoryRepository
	userLock *lock.UserLock

	rollCost    int64
	maxRolls    int
	combineCost int64

	randFloat func() float64
	randIntn  func(int) int
}

// NewGachaService creates a new GachaService instance.
func NewGachaService(
	goldRepo *repository.GoldRepository,
	invRepo *repository.InventoryRepository,
	userLock *lock.UserLock,
	rollCost int64,
	maxRolls int,
	combineCost int64,
) *GachaService {
	return &GachaService{
		goldRepo:    goldRepo,
		invRepo:     invRepo,
		userLock:    userLock,
		rollCost:    rollCost,
		maxRolls:    maxRolls,
		combineCost: combineCost,
		randFloat:   rand.Float64,
		randIntn:    rand.Intn,
	}
}

// RollCost returns the gold cost of a single roll.
func (s *GachaService) RollCost() int64 {
	return s.rollCost
}

// CombineCost returns how many copies of an item a combine consumes.
func (s *GachaService) CombineCost() int64 {
	return s.combineCost
}

// Roll draws count items, charging rollCost gold per draw up front. Returns
// the drawn items in order. Nothing is charged or awarded when the balance
// cannot cover all the rolls.
func (s *GachaService) Roll(ctx context.Context, userID int64, count int) ([]catalog.Item, error) {
	if count < 1 || count > s.maxRolls {
		return nil, ErrRollCountInvalid
	}

	var drawn []catalog.Item
	err := s.userLock.WithLockContext(ctx, userID, lockWait, func() error {
		if _, err := s.goldRepo.Deduct(ctx, userID, int64(count)*s.rollCost); err != nil {
			if errors.Is(err, repository.ErrInsufficientGold) {
				return ErrInsufficientGold
			}
			return err
		}

		for i := 0; i < count; i++ {
			item := s.draw()
			if err := s.invRepo.AddItem(ctx, userID, item.ID, 1); err != nil {
				return fmt.Errorf("failed to award item: %w", err)
			}
			drawn = append(drawn, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return drawn, nil
}

// draw picks one item: a weighted rarity tier first, then a uniform item
// inside it.
func (s *GachaService) draw() catalog.Item {
	tier := catalog.ByRarity(catalog.PickRarity(s.randFloat()))
	return tier[s.randIntn(len(tier))]
}

// Inventory returns a user's item stacks.
func (s *GachaService) Inventory(ctx context.Context, userID int64) ([]model.InventoryItem, error) {
	return s.invRepo.GetInventory(ctx, userID)
}

// Combine consumes combineCost copies of the given item for a combineChance
// shot at one item of the next rarity tier. The copies are consumed whether
// or not the combine succeeds. Returns the gained item, or nil when the
// combine fizzled.
func (s *GachaService) Combine(ctx context.Context, userID, itemID int64) (*catalog.Item, error) {
	item, ok := catalog.Get(itemID)
	if !ok {
		return nil, ErrUnknownItem
	}

	next, ok := catalog.NextRarity(item.Rarity)
	if !ok {
		return nil, ErrNoHigherRarity
	}

	var gained *catalog.Item
	err := s.userLock.WithLockContext(ctx, userID, lockWait, func() error {
		if err := s.invRepo.TakeItems(ctx, userID, itemID, s.combineCost); err != nil {
			return err
		}

		if s.randFloat() < combineChance {
			tier := catalog.ByRarity(next)
			won := tier[s.randIntn(len(tier))]
			if err := s.invRepo.AddItem(ctx, userID, won.ID, 1); err != nil {
				return fmt.Errorf("failed to award combined item: %w", err)
			}
			gained = &won
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return gained, nil
}
