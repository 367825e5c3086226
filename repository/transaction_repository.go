package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nakamoto/database"
	"nakamoto/models"
)

// TransactionRepository implements the service.TransactionRepository interface
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepositoryWithTx creates a new transaction repository with a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Create inserts a new PENDING transaction and returns it with its assigned ID.
// No balance check or hold happens here; favors move only on resolution.
func (r *TransactionRepository) Create(ctx context.Context, senderID, receiverID, amount int64) (*models.FavorTransaction, error) {
	query := `
		INSERT INTO transactions (sender_discord_id, receiver_discord_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sender_discord_id, receiver_discord_id, amount, status, completed_at, created_at
	`

	var txn models.FavorTransaction
	err := r.q.QueryRow(ctx, query, senderID, receiverID, amount, models.TransactionStatusPending).Scan(
		&txn.ID,
		&txn.SenderDiscordID,
		&txn.ReceiverDiscordID,
		&txn.Amount,
		&txn.Status,
		&txn.CompletedAt,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction from %d to %d: %w", senderID, receiverID, err)
	}

	return &txn, nil
}

// GetByID retrieves a transaction by its ID, nil when not found
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.FavorTransaction, error) {
	query := `
		SELECT id, sender_discord_id, receiver_discord_id, amount, status, completed_at, created_at
		FROM transactions
		WHERE id = $1
	`

	var txn models.FavorTransaction
	err := r.q.QueryRow(ctx, query, id).Scan(
		&txn.ID,
		&txn.SenderDiscordID,
		&txn.ReceiverDiscordID,
		&txn.Amount,
		&txn.Status,
		&txn.CompletedAt,
		&txn.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}

	return &txn, nil
}

// MarkCompleted transitions a transaction to COMPLETED with a server-assigned timestamp
func (r *TransactionRepository) MarkCompleted(ctx context.Context, id int64) error {
	query := `
		UPDATE transactions
		SET status = $1, completed_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, models.TransactionStatusCompleted, id)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %d completed: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction %d not found", id)
	}

	return nil
}

// MarkCancelled transitions a transaction to CANCELLED.
// The completion timestamp stays unset; it marks completion only.
func (r *TransactionRepository) MarkCancelled(ctx context.Context, id int64) error {
	query := `
		UPDATE transactions
		SET status = $1
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, models.TransactionStatusCancelled, id)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %d cancelled: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction %d not found", id)
	}

	return nil
}

// GetPendingBySender returns a user's unresolved outgoing transactions, oldest first
func (r *TransactionRepository) GetPendingBySender(ctx context.Context, senderID int64) ([]*models.FavorTransaction, error) {
	query := `
		SELECT id, sender_discord_id, receiver_discord_id, amount, status, completed_at, created_at
		FROM transactions
		WHERE sender_discord_id = $1 AND status = $2
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, senderID, models.TransactionStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transactions for sender %d: %w", senderID, err)
	}
	defer rows.Close()

	transactions := make([]*models.FavorTransaction, 0)
	for rows.Next() {
		var txn models.FavorTransaction
		err := rows.Scan(
			&txn.ID,
			&txn.SenderDiscordID,
			&txn.ReceiverDiscordID,
			&txn.Amount,
			&txn.Status,
			&txn.CompletedAt,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}
