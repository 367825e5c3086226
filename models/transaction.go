package models

import (
	"time"
)

// TransactionStatus represents the lifecycle state of a favor transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// FavorTransaction represents a proposed transfer of favors between two users.
// Balances are untouched until the transaction is resolved.
type FavorTransaction struct {
	ID                int64             `db:"id"`
	SenderDiscordID   int64             `db:"sender_discord_id"`
	ReceiverDiscordID int64             `db:"receiver_discord_id"`
	Amount            int64             `db:"amount"`
	Status            TransactionStatus `db:"status"`
	CompletedAt       *time.Time        `db:"completed_at"`
	CreatedAt         time.Time         `db:"created_at"`
}

// IsPending reports whether the transaction can still be resolved
func (t *FavorTransaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}
