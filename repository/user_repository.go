package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nakamoto/database"
	"nakamoto/models"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByDiscordID retrieves a user by their Discord ID
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	query := `
		SELECT discord_id, nickname, created_at, updated_at
		FROM users
		WHERE discord_id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&user.DiscordID,
		&user.Nickname,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by discord ID %d: %w", discordID, err)
	}

	return &user, nil
}

// CreateWithWallet creates a user row and its wallet row. Both inserts run on
// the repository's queryable, so callers that need the pair to be atomic must
// invoke this inside a unit of work.
func (r *UserRepository) CreateWithWallet(ctx context.Context, discordID int64, nickname string, startingFavors int64) (*models.User, error) {
	query := `
		INSERT INTO users (discord_id, nickname)
		VALUES ($1, $2)
		RETURNING discord_id, nickname, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID, nickname).Scan(
		&user.DiscordID,
		&user.Nickname,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user with discord ID %d: %w", discordID, err)
	}

	walletQuery := `
		INSERT INTO wallets (discord_id, favors)
		VALUES ($1, $2)
	`
	if _, err := r.q.Exec(ctx, walletQuery, discordID, startingFavors); err != nil {
		return nil, fmt.Errorf("failed to create wallet for user %d: %w", discordID, err)
	}

	return &user, nil
}

// UpdateNickname updates a user's stored nickname
func (r *UserRepository) UpdateNickname(ctx context.Context, discordID int64, nickname string) error {
	query := `
		UPDATE users
		SET nickname = $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, nickname, discordID)
	if err != nil {
		return fmt.Errorf("failed to update nickname for user %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with discord ID %d not found", discordID)
	}

	return nil
}

// GetWallet retrieves a user's wallet with their nickname.
// Returns nil without error when the user has no wallet.
func (r *UserRepository) GetWallet(ctx context.Context, discordID int64) (*models.Wallet, error) {
	query := `
		SELECT w.discord_id, u.nickname, w.favors
		FROM wallets w
		JOIN users u ON u.discord_id = w.discord_id
		WHERE w.discord_id = $1
	`

	var wallet models.Wallet
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&wallet.DiscordID,
		&wallet.Nickname,
		&wallet.Favors,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet for user %d: %w", discordID, err)
	}

	return &wallet, nil
}

// AdjustFavors applies a delta to a wallet balance in a single statement.
// The delta may be any sign; the favor economy has no scarcity rules.
// Returns false without error when no wallet exists for the user.
func (r *UserRepository) AdjustFavors(ctx context.Context, discordID int64, delta int64) (bool, error) {
	query := `
		UPDATE wallets
		SET favors = favors + $1
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, delta, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to adjust favors for user %d: %w", discordID, err)
	}

	return result.RowsAffected() > 0, nil
}
