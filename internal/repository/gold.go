// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors for repository operations.
var (
	ErrInsufficientGold = errors.New("insufficient gold")
)

// GoldRepository handles gold balance persistence.
type GoldRepository struct {
	pool *pgxpool.Pool
}

// NewGoldRepository creates a new GoldRepository instance.
func NewGoldRepository(pool *pgxpool.Pool) *GoldRepository {
	return &GoldRepository{pool: pool}
}

// Get returns a user's gold balance. Users with no row have 0 gold.
func (r *GoldRepository) Get(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT gold FROM user_gold WHERE user_id = $1`

	var gold int64
	err := r.pool.QueryRow(ctx, query, userID).Scan(&gold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get gold: %w", err)
	}

	return gold, nil
}

// Add credits gold to a user, creating the row on first contact.
// Returns the updated balance.
func (r *GoldRepository) Add(ctx context.Context, userID int64, amount int64) (int64, error) {
	const query = `
		INSERT INTO user_gold (user_id, gold, inserted_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET gold = user_gold.gold + $2
		RETURNING gold
	`

	var gold int64
	err := r.pool.QueryRow(ctx, query, userID, amount).Scan(&gold)
	if err != nil {
		return 0, fmt.Errorf("failed to add gold: %w", err)
	}

	return gold, nil
}

// Deduct removes gold from a user if they can cover the amount. Returns
// ErrInsufficientGold when the balance is too low; the balance is left
// untouched in that case.
func (r *GoldRepository) Deduct(ctx context.Context, userID int64, amount int64) (int64, error) {
	const query = `
		UPDATE user_gold
		SET gold = gold - $2
		WHERE user_id = $1 AND gold >= $2
		RETURNING gold
	`

	var gold int64
	err := r.pool.QueryRow(ctx, query, userID, amount).Scan(&gold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrInsufficientGold
		}
		return 0, fmt.Errorf("failed to deduct gold: %w", err)
	}

	return gold, nil
}
