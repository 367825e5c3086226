package service

import (
	"context"

	"nakamoto/events"
	"nakamoto/models"
)

// UserRepository defines the interface for user and wallet data access
type UserRepository interface {
	// GetByDiscordID retrieves a user by their Discord ID, nil when unknown
	GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error)

	// CreateWithWallet creates a user row and its wallet row with the starting balance
	CreateWithWallet(ctx context.Context, discordID int64, nickname string, startingFavors int64) (*models.User, error)

	// UpdateNickname updates a user's stored nickname
	UpdateNickname(ctx context.Context, discordID int64, nickname string) error

	// GetWallet retrieves a user's wallet with their nickname, nil when absent
	GetWallet(ctx context.Context, discordID int64) (*models.Wallet, error)

	// AdjustFavors applies a delta of any sign to a wallet; false when no wallet exists
	AdjustFavors(ctx context.Context, discordID int64, delta int64) (bool, error)
}

// TransactionRepository defines the interface for favor transaction data access
type TransactionRepository interface {
	// Create inserts a new PENDING transaction and returns it with its assigned ID
	Create(ctx context.Context, senderID, receiverID, amount int64) (*models.FavorTransaction, error)

	// GetByID retrieves a transaction by its ID, nil when not found
	GetByID(ctx context.Context, id int64) (*models.FavorTransaction, error)

	// MarkCompleted transitions a transaction to COMPLETED with a server-assigned timestamp
	MarkCompleted(ctx context.Context, id int64) error

	// MarkCancelled transitions a transaction to CANCELLED
	MarkCancelled(ctx context.Context, id int64) error

	// GetPendingBySender returns a user's unresolved outgoing transactions
	GetPendingBySender(ctx context.Context, senderID int64) ([]*models.FavorTransaction, error)
}

// NominationRepository defines the interface for nomination data access
type NominationRepository interface {
	// Create inserts a nomination and fills in its assigned ID and timestamp
	Create(ctx context.Context, nomination *models.Nomination) error

	// GetFiltered returns nominations matching all set filters; never nil
	GetFiltered(ctx context.Context, filter models.NominationFilter) ([]*models.Nomination, error)

	// GetCategories returns the category vocabulary in name order
	GetCategories(ctx context.Context) ([]string, error)
}

// LedgerService defines the interface for wallet and transaction operations
type LedgerService interface {
	// EnsureUser idempotently creates the user+wallet pair on first sight and
	// refreshes the nickname when it changed
	EnsureUser(ctx context.Context, discordID int64, nickname string) error

	// GetWallet returns a user's wallet, nil when they have none
	GetWallet(ctx context.Context, discordID int64) (*models.Wallet, error)

	// CreateTransaction inserts a PENDING transfer proposal and returns its ID.
	// Nothing is reserved; balances move only on confirmation.
	CreateTransaction(ctx context.Context, senderID, receiverID, amount int64) (int64, error)

	// ConfirmTransaction resolves a transaction to COMPLETED and credits the receiver
	ConfirmTransaction(ctx context.Context, transactionID, callerID int64) (models.ResolveOutcome, error)

	// CancelTransaction resolves a transaction to CANCELLED and credits the sender
	CancelTransaction(ctx context.Context, transactionID, callerID int64) (models.ResolveOutcome, error)

	// AdjustFavors applies a delta to a wallet balance
	AdjustFavors(ctx context.Context, discordID int64, delta int64) (models.AdjustOutcome, error)

	// GetPendingTransactions returns a user's unresolved outgoing proposals
	GetPendingTransactions(ctx context.Context, senderID int64) ([]*models.FavorTransaction, error)
}

// NominationService defines the interface for awards nomination operations
type NominationService interface {
	// AddNomination stores a nomination, truncating the message to the storage
	// limit. Storage failures are logged and reported via the receipt.
	AddNomination(ctx context.Context, nomination *models.Nomination) models.NominationReceipt

	// GetNominations returns nominations matching the filter
	GetNominations(ctx context.Context, filter models.NominationFilter) ([]*models.Nomination, error)

	// ListCategories returns the category vocabulary in name order
	ListCategories(ctx context.Context) ([]string, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	TransactionRepository() TransactionRepository
	NominationRepository() NominationRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
