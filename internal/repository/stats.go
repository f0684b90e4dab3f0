package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gold-casino-bot/internal/model"
)

// StatsRepository handles casino leaderboard persistence.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository instance.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// RecordOutcome accumulates one finished game into the user's lifetime
// spent/earned totals.
func (r *StatsRepository) RecordOutcome(ctx context.Context, userID int64, spent, earned int64) error {
	const query = `
		INSERT INTO casino_spent_earned (user_id, total_spent, total_earned)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET
			total_spent = casino_spent_earned.total_spent + $2,
			total_earned = casino_spent_earned.total_earned + $3
	`

	_, err := r.pool.Exec(ctx, query, userID, spent, earned)
	if err != nil {
		return fmt.Errorf("failed to record casino outcome: %w", err)
	}

	return nil
}

// GetStats returns a user's lifetime casino totals.
// Returns zero totals when the user has never played.
func (r *StatsRepository) GetStats(ctx context.Context, userID int64) (*model.CasinoStats, error) {
	const query = `
		SELECT user_id, total_spent, total_earned
		FROM casino_spent_earned
		WHERE user_id = $1
	`

	var stats model.CasinoStats
	err := r.pool.QueryRow(ctx, query, userID).Scan(&stats.UserID, &stats.TotalSpent, &stats.TotalEarned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.CasinoStats{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to get casino stats: %w", err)
	}

	return &stats, nil
}

// GetTopEarners returns the top N users by lifetime gross earnings.
func (r *StatsRepository) GetTopEarners(ctx context.Context, limit int) ([]*model.CasinoStats, error) {
	const query = `
		SELECT user_id, total_spent, total_earned
		FROM casino_spent_earned
		ORDER BY total_earned DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top earners: %w", err)
	}
	defer rows.Close()

	var top []*model.CasinoStats
	for rows.Next() {
		var stats model.CasinoStats
		if err := rows.Scan(&stats.UserID, &stats.TotalSpent, &stats.TotalEarned); err != nil {
			return nil, fmt.Errorf("failed to scan casino stats: %w", err)
		}
		top = append(top, &stats)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating casino stats: %w", err)
	}

	return top, nil
}
