package models

import (
	"time"
)

// MaxNominationMessageLength is the storage limit for nominated message text
const MaxNominationMessageLength = 255

// Nomination represents a chat message flagged for the awards
type Nomination struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	ChannelID int64     `db:"channel_id"`
	MessageID int64     `db:"message_id"`
	AuthorID  int64     `db:"author_id"`
	Category  string    `db:"category"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// NominationFilter holds optional, conjunctive query filters.
// Nil fields are not applied.
type NominationFilter struct {
	AuthorID  *int64
	GuildID   *int64
	ChannelID *int64
	MessageID *int64
	Category  *string
}

// NominationReceipt reports the outcome of a nomination insert.
// Callers only branch on OK; Reason is retained for operator logs.
type NominationReceipt struct {
	OK     bool
	Reason error
}
