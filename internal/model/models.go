// Package model defines the data models for the casino bot.
package model

import "time"

// UserGold is a user's gold balance.
type UserGold struct {
	UserID     int64     `db:"user_id"`
	Gold       int64     `db:"gold"`
	InsertedAt time.Time `db:"inserted_at"`
}

// CasinoStats tracks a user's lifetime casino turnover for the leaderboard.
// TotalSpent is the gold paid to play; TotalEarned is the gross gold returned
// (winnings plus refunded stakes).
type CasinoStats struct {
	UserID      int64  `db:"user_id"`
	TotalSpent  int64  `db:"total_spent"`
	TotalEarned int64  `db:"total_earned"`
	Username    string `db:"-"` // resolved from the chat platform, not stored
}

// Net is the user's lifetime casino profit or loss.
func (s CasinoStats) Net() int64 {
	return s.TotalEarned - s.TotalSpent
}

// InventoryItem is one stack of a collectible item in a user's inventory.
type InventoryItem struct {
	UserID     int64     `db:"user_id"`
	ItemID     int64     `db:"item_id"`
	Quantity   int64     `db:"quantity"`
	InsertedAt time.Time `db:"inserted_at"`
}

// Submission records one rewarded daily photo submission. MessageID is the
// platform message that carried the photo; each message grants gold at most
// once.
type Submission struct {
	MessageID  int64     `db:"message_id"`
	UserID     int64     `db:"user_id"`
	InsertedAt time.Time `db:"inserted_at"`
}
