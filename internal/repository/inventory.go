package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gold-casino-bot/internal/model"
)

// ErrNotEnoughItems is returned when a combine attempt would take more of an
// item than the user holds.
var ErrNotEnoughItems = errors.New("not enough items")

// InventoryRepository handles collectible item persistence.
type InventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository instance.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

// AddItem adds quantity of an item to a user's inventory, creating the stack
// if needed.
func (r *InventoryRepository) AddItem(ctx context.Context, userID, itemID int64, quantity int64) error {
	const query = `
		INSERT INTO user_inventory (user_id, item_id, quantity, inserted_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = user_inventory.quantity + $3
	`

	_, err := r.pool.Exec(ctx, query, userID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	return nil
}

// TakeItems removes quantity of an item from a user's inventory. Returns
// ErrNotEnoughItems when the stack is too small; nothing is removed in that
// case.
func (r *InventoryRepository) TakeItems(ctx context.Context, userID, itemID int64, quantity int64) error {
	const query = `
		UPDATE user_inventory
		SET quantity = quantity - $3
		WHERE user_id = $1 AND item_id = $2 AND quantity >= $3
	`

	result, err := r.pool.Exec(ctx, query, userID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to take items: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotEnoughItems
	}

	return nil
}

// GetInventory returns all item stacks a user holds with quantity > 0,
// largest stacks first.
func (r *InventoryRepository) GetInventory(ctx context.Context, userID int64) ([]model.InventoryItem, error) {
	const query = `
		SELECT user_id, item_id, quantity, inserted_at
		FROM user_inventory
		WHERE user_id = $1 AND quantity > 0
		ORDER BY quantity DESC, item_id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		if err := rows.Scan(&item.UserID, &item.ItemID, &item.Quantity, &item.InsertedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}

	return items, nil
}

// GetQuantity returns how many of an item a user holds. Missing stacks count
// as zero.
func (r *InventoryRepository) GetQuantity(ctx context.Context, userID, itemID int64) (int64, error) {
	const query = `
		SELECT quantity FROM user_inventory
		WHERE user_id = $1 AND item_id = $2
	`

	var quantity int64
	err := r.pool.QueryRow(ctx, query, userID, itemID).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		// The user never held the item.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get item quantity: %w", err)
	}

	return quantity, nil
}
