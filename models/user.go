package models

import (
	"time"
)

// User represents a Discord user known to the bot
type User struct {
	DiscordID int64     `db:"discord_id"`
	Nickname  string    `db:"nickname"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Wallet represents a user's favor balance, joined with their nickname
type Wallet struct {
	DiscordID int64  `db:"discord_id"`
	Nickname  string `db:"nickname"`
	Favors    int64  `db:"favors"`
}
