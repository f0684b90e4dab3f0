package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gold-casino-bot/internal/model"
)

// SubmissionRepository handles daily submission persistence.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository instance.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Has reports whether a message has already been rewarded.
func (r *SubmissionRepository) Has(ctx context.Context, messageID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM submissions WHERE message_id = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, messageID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check submission: %w", err)
	}

	return exists, nil
}

// Track records a rewarded submission.
func (r *SubmissionRepository) Track(ctx context.Context, messageID, userID int64) error {
	const query = `
		INSERT INTO submissions (message_id, user_id, inserted_at)
		VALUES ($1, $2, NOW())
	`

	_, err := r.pool.Exec(ctx, query, messageID, userID)
	if err != nil {
		return fmt.Errorf("failed to track submission: %w", err)
	}

	return nil
}

// TrackAt records a rewarded submission with a specific timestamp.
// Useful for testing streak calculations.
func (r *SubmissionRepository) TrackAt(ctx context.Context, messageID, userID int64, at time.Time) error {
	const query = `
		INSERT INTO submissions (message_id, user_id, inserted_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, messageID, userID, at)
	if err != nil {
		return fmt.Errorf("failed to track submission: %w", err)
	}

	return nil
}

// FetchByUser returns all of a user's submissions ordered oldest first.
func (r *SubmissionRepository) FetchByUser(ctx context.Context, userID int64) ([]model.Submission, error) {
	const query = `
		SELECT message_id, user_id, inserted_at
		FROM submissions
		WHERE user_id = $1
		ORDER BY inserted_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		var sub model.Submission
		if err := rows.Scan(&sub.MessageID, &sub.UserID, &sub.InsertedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	return submissions, nil
}
