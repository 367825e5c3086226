package service

import (
	"context"
	"fmt"

	"nakamoto/events"
	"nakamoto/models"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	uowFactory     UnitOfWorkFactory
	startingFavors int64
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory, startingFavors int64) LedgerService {
	return &ledgerService{
		uowFactory:     uowFactory,
		startingFavors: startingFavors,
	}
}

// EnsureUser creates the user+wallet pair on first sight, atomically, and
// refreshes the nickname when it differs from the stored one.
func (s *ledgerService) EnsureUser(ctx context.Context, discordID int64, nickname string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if user == nil {
		if _, err := uow.UserRepository().CreateWithWallet(ctx, discordID, nickname, s.startingFavors); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return uow.Commit()
	}

	if user.Nickname == nickname {
		// Nothing to do; read-only path rolls back
		return nil
	}

	if err := uow.UserRepository().UpdateNickname(ctx, discordID, nickname); err != nil {
		return fmt.Errorf("failed to update nickname: %w", err)
	}
	return uow.Commit()
}

// GetWallet returns a user's wallet, nil when they have none
func (s *ledgerService) GetWallet(ctx context.Context, discordID int64) (*models.Wallet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.UserRepository().GetWallet(ctx, discordID)
}

// CreateTransaction inserts a PENDING transfer proposal and returns its ID.
// Amount is accepted as-is: no sign, magnitude or balance check.
func (s *ledgerService) CreateTransaction(ctx context.Context, senderID, receiverID, amount int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	txn, err := uow.TransactionRepository().Create(ctx, senderID, receiverID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return txn.ID, nil
}

// ConfirmTransaction marks a transaction COMPLETED and credits the receiver.
// The status update and the credit are separate commits; the outcome reflects
// the status change, and a credit failure comes back as the error.
func (s *ledgerService) ConfirmTransaction(ctx context.Context, transactionID, callerID int64) (models.ResolveOutcome, error) {
	txn, outcome, err := s.resolve(ctx, transactionID, callerID, models.TransactionStatusCompleted)
	if err != nil || outcome != models.ResolveOK {
		return outcome, err
	}

	if err := s.credit(ctx, txn.ReceiverDiscordID, txn.Amount); err != nil {
		return models.ResolveOK, fmt.Errorf("transaction %d completed but crediting receiver failed: %w", transactionID, err)
	}

	return models.ResolveOK, nil
}

// CancelTransaction marks a transaction CANCELLED and credits the sender
func (s *ledgerService) CancelTransaction(ctx context.Context, transactionID, callerID int64) (models.ResolveOutcome, error) {
	txn, outcome, err := s.resolve(ctx, transactionID, callerID, models.TransactionStatusCancelled)
	if err != nil || outcome != models.ResolveOK {
		return outcome, err
	}

	if err := s.credit(ctx, txn.SenderDiscordID, txn.Amount); err != nil {
		return models.ResolveOK, fmt.Errorf("transaction %d cancelled but crediting sender failed: %w", transactionID, err)
	}

	return models.ResolveOK, nil
}

// resolve runs the find-check-update sequence shared by confirm and cancel.
// The caller must match the stored sender for either resolution.
func (s *ledgerService) resolve(ctx context.Context, transactionID, callerID int64, target models.TransactionStatus) (*models.FavorTransaction, models.ResolveOutcome, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, models.ResolveNotFound, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	txn, err := uow.TransactionRepository().GetByID(ctx, transactionID)
	if err != nil {
		return nil, models.ResolveNotFound, fmt.Errorf("failed to get transaction: %w", err)
	}
	if txn == nil {
		return nil, models.ResolveNotFound, nil
	}
	if txn.SenderDiscordID != callerID {
		return nil, models.ResolveWrongCaller, nil
	}
	if !txn.IsPending() {
		return nil, models.ResolveNotPending, nil
	}

	switch target {
	case models.TransactionStatusCompleted:
		err = uow.TransactionRepository().MarkCompleted(ctx, transactionID)
	case models.TransactionStatusCancelled:
		err = uow.TransactionRepository().MarkCancelled(ctx, transactionID)
	default:
		err = fmt.Errorf("invalid target status %q", target)
	}
	if err != nil {
		return nil, models.ResolveNotFound, fmt.Errorf("failed to update transaction %d: %w", transactionID, err)
	}

	uow.EventBus().Publish(events.TransactionResolvedEvent{
		TransactionID:     txn.ID,
		SenderDiscordID:   txn.SenderDiscordID,
		ReceiverDiscordID: txn.ReceiverDiscordID,
		Amount:            txn.Amount,
		Status:            target,
	})

	if err := uow.Commit(); err != nil {
		return nil, models.ResolveNotFound, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return txn, models.ResolveOK, nil
}

// credit applies a favor credit in its own commit
func (s *ledgerService) credit(ctx context.Context, discordID, amount int64) error {
	outcome, err := s.AdjustFavors(ctx, discordID, amount)
	if err != nil {
		return err
	}
	if outcome != models.AdjustOK {
		return fmt.Errorf("no wallet for user %d", discordID)
	}
	return nil
}

// AdjustFavors applies a delta to a wallet balance
func (s *ledgerService) AdjustFavors(ctx context.Context, discordID int64, delta int64) (models.AdjustOutcome, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return models.AdjustNotFound, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	found, err := uow.UserRepository().AdjustFavors(ctx, discordID, delta)
	if err != nil {
		return models.AdjustNotFound, fmt.Errorf("failed to adjust favors: %w", err)
	}
	if !found {
		return models.AdjustNotFound, nil
	}

	uow.EventBus().Publish(events.FavorsChangedEvent{
		DiscordID: discordID,
		Delta:     delta,
	})

	if err := uow.Commit(); err != nil {
		return models.AdjustNotFound, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return models.AdjustOK, nil
}

// GetPendingTransactions returns a user's unresolved outgoing proposals
func (s *ledgerService) GetPendingTransactions(ctx context.Context, senderID int64) ([]*models.FavorTransaction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.TransactionRepository().GetPendingBySender(ctx, senderID)
}
