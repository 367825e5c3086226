package service

import (
	"context"
	"errors"
	"testing"

	"nakamoto/events"
	"nakamoto/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testStartingFavors = int64(5)

func setupLedgerTest() (LedgerService, *MockUnitOfWorkFactory, *MockUnitOfWork, *MockUserRepository, *MockTransactionRepository, *MockEventPublisher) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockTransactionRepo := new(MockTransactionRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, mockTransactionRepo, nil)
	mockUoW.SetEventBus(mockPublisher)
	mockFactory.On("Create").Return(mockUoW)

	service := NewLedgerService(mockFactory, testStartingFavors)
	return service, mockFactory, mockUoW, mockUserRepo, mockTransactionRepo, mockPublisher
}

func TestLedgerService_EnsureUser_NewUser(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, _, _ := setupLedgerTest()

	newUser := &models.User{
		DiscordID: 123456,
		Nickname:  "newuser",
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByDiscordID", ctx, int64(123456)).Return(nil, nil)
	mockUserRepo.On("CreateWithWallet", ctx, int64(123456), "newuser", testStartingFavors).Return(newUser, nil)

	err := service.EnsureUser(ctx, 123456, "newuser")

	assert.NoError(t, err)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestLedgerService_EnsureUser_ExistingUserSameNickname(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, _, _ := setupLedgerTest()

	existingUser := &models.User{
		DiscordID: 123456,
		Nickname:  "testuser",
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	// No Commit() expected since nothing changes

	mockUserRepo.On("GetByDiscordID", ctx, int64(123456)).Return(existingUser, nil)

	err := service.EnsureUser(ctx, 123456, "testuser")

	assert.NoError(t, err)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockUserRepo.AssertNotCalled(t, "CreateWithWallet")
	mockUserRepo.AssertNotCalled(t, "UpdateNickname")
}

func TestLedgerService_EnsureUser_NicknameChanged(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, _, _ := setupLedgerTest()

	existingUser := &models.User{
		DiscordID: 123456,
		Nickname:  "oldnick",
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByDiscordID", ctx, int64(123456)).Return(existingUser, nil)
	mockUserRepo.On("UpdateNickname", ctx, int64(123456), "newnick").Return(nil)

	err := service.EnsureUser(ctx, 123456, "newnick")

	assert.NoError(t, err)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockUserRepo.AssertNotCalled(t, "CreateWithWallet")
}

func TestLedgerService_GetWallet(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, _, _ := setupLedgerTest()

	wallet := &models.Wallet{
		DiscordID: 123456,
		Nickname:  "testuser",
		Favors:    42,
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetWallet", ctx, int64(123456)).Return(wallet, nil)

	result, err := service.GetWallet(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, wallet, result)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestLedgerService_CreateTransaction(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, mockTransactionRepo, _ := setupLedgerTest()

	created := &models.FavorTransaction{
		ID:                77,
		SenderDiscordID:   111,
		ReceiverDiscordID: 222,
		Amount:            3,
		Status:            models.TransactionStatusPending,
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransactionRepo.On("Create", ctx, int64(111), int64(222), int64(3)).Return(created, nil)

	id, err := service.CreateTransaction(ctx, 111, 222, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(77), id)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
}

func TestLedgerService_ConfirmTransaction_NotFound(t *testing.T) {
	ctx := context.Background()
	service, _, mockUoW, mockUserRepo, mockTransactionRepo, _ := setupLedgerTest()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransactionRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	outcome, err := service.ConfirmTransaction(ctx, 99, 111)

	assert.NoError(t, err)
	assert.Equal(t, models.ResolveNotFound, outcome)

	mockUoW.AssertNotCalled(t, "Commit")
	mockTransactionRepo.AssertNotCalled(t, "MarkCompleted")
	mockUserRepo.AssertNotCalled(t, "AdjustFavors")
}

func TestLedgerService_ConfirmTransaction_WrongCaller(t *testing.T) {
	ctx := context.Background()
	service, _, mockUoW, mockUserRepo, mockTransactionRepo, _ := setupLedgerTest()

	pending := &models.FavorTransaction{
		ID:                99,
		SenderDiscordID:   111,
		ReceiverDiscordID: 222,
		Amount:            3,
		Status:            models.TransactionStatusPending,
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransactionRepo.On("GetByID", ctx, int64(99)).Return(pending, nil)

	// The receiver cannot resolve the transaction, only the sender can
	outcome, err := service.ConfirmTransaction(ctx, 99, 222)

	assert.NoError(t, err)
	assert.Equal(t, models.ResolveWrongCaller, outcome)

	mockUoW.AssertNotCalled(t, "Commit")
	mockTransactionRepo.AssertNotCalled(t, "MarkCompleted")
	mockUserRepo.AssertNotCalled(t, "AdjustFavors")
}

func TestLedgerService_ConfirmTransaction_NotPending(t *testing.T) {
	ctx := context.Background()
	service, _, mockUoW, mockUserRepo, mockTransactionRepo, _ := setupLedgerTest()

	resolved := &models.FavorTransaction{
		ID:                99,
		SenderDiscordID:   111,
		ReceiverDiscordID: 222,
		Amount:            3,
		Status:            models.TransactionStatusCancelled,
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransactionRepo.On("GetByID", ctx, int64(99)).Return(resolved, nil)

	outcome, err := service.ConfirmTransaction(ctx, 99, 111)

	assert.NoError(t, err)
	assert.Equal(t, models.ResolveNotPending, outcome)

	mockUoW.AssertNotCalled(t, "Commit")
	mockTransactionRepo.AssertNotCalled(t, "MarkCompleted")
	mockUserRepo.AssertNotCalled(t, "AdjustFavors")
}

func TestLedgerService_ConfirmTransaction_CreditsReceiver(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, mockTransactionRepo, mockPublisher := setupLedgerTest()

	pending := &models.FavorTransaction{
		ID:                99,
		SenderDiscordID:   111,
		ReceiverDiscordID: 222,
		Amount:            3,
		Status:            models.TransactionStatusPending,
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransactionRepo.On("GetByID", ctx, int64(99)).Return(pending, nil)
	mockTransactionRepo.On("MarkCompleted", ctx, int64(99)).Return(nil)
	mockUserRepo.On("AdjustFavors", ctx, int64(222), int64(3)).Return(true, nil)

	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		resolved, ok := e.(events.TransactionResolvedEvent)
		return ok && resolved.TransactionID == 99 && resolved.Status == models.TransactionStatusCompleted
	})).Return()
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		changed, ok := e.(events.FavorsChangedEvent)
		return ok && changed.DiscordID == 222 && changed.Delta == 3
	})).Return()

	outcome, err := service.ConfirmTransaction(ctx, 99, 111)

	assert.NoError(t, err)
	assert.Equal(t, models.ResolveOK, outcome)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestLedgerService_ConfirmTransaction_CreditFailure(t *testing.T) {
	ctx := context.Background()
	service, _, mockUoW, mockUserRepo, mockTransactionRepo, mockPublisher := setupLedgerTest()

	pending := &models.FavorTransaction{
		ID:                99,
		SenderDiscordID:   111,
		ReceiverDiscordID: 222,
		Amount:            3,
		Status:            models.TransactionStatusPending,
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransactionRepo.On("GetByID", ctx, int64(99)).Return(pending, nil)
	mockTransactionRepo.On("MarkCompleted", ctx, int64(99)).Return(nil)
	mockUserRepo.On("AdjustFavors", ctx, int64(222), int64(3)).Return(false, errors.New("database error"))

	mockPublisher.On("Publish", mock.Anything).Return()

	// The status change already committed, so the outcome stays OK and the
	// credit failure surfaces as the error
	outcome, err := service.ConfirmTransaction(ctx, 99, 111)

	assert.Error(t, err)
	assert.Equal(t, models.ResolveOK, outcome)
	assert.Contains(t, err.Error(), "crediting receiver failed")
}

func TestLedgerService_CancelTransaction_CreditsSender(t *testing.T) {
	ctx := context.Background()
	service, _, mockUoW, mockUserRepo, mockTransactionRepo, mockPublisher := setupLedgerTest()

	pending := &models.FavorTransaction{
		ID:                99,
		SenderDiscordID:   111,
		ReceiverDiscordID: 222,
		Amount:            3,
		Status:            models.TransactionStatusPending,
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransactionRepo.On("GetByID", ctx, int64(99)).Return(pending, nil)
	mockTransactionRepo.On("MarkCancelled", ctx, int64(99)).Return(nil)
	// Cancellation returns the favors to the sender
	mockUserRepo.On("AdjustFavors", ctx, int64(111), int64(3)).Return(true, nil)

	mockPublisher.On("Publish", mock.Anything).Return()

	outcome, err := service.CancelTransaction(ctx, 99, 111)

	assert.NoError(t, err)
	assert.Equal(t, models.ResolveOK, outcome)

	mockTransactionRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockTransactionRepo.AssertNotCalled(t, "MarkCompleted")
}

func TestLedgerService_AdjustFavors_Success(t *testing.T) {
	ctx := context.Background()
	service, _, mockUoW, mockUserRepo, _, mockPublisher := setupLedgerTest()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("AdjustFavors", ctx, int64(123456), int64(-2)).Return(true, nil)

	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		changed, ok := e.(events.FavorsChangedEvent)
		return ok && changed.DiscordID == 123456 && changed.Delta == -2
	})).Return()

	outcome, err := service.AdjustFavors(ctx, 123456, -2)

	assert.NoError(t, err)
	assert.Equal(t, models.AdjustOK, outcome)

	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestLedgerService_AdjustFavors_NoWallet(t *testing.T) {
	ctx := context.Background()
	service, _, mockUoW, mockUserRepo, _, mockPublisher := setupLedgerTest()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("AdjustFavors", ctx, int64(123456), int64(10)).Return(false, nil)

	outcome, err := service.AdjustFavors(ctx, 123456, 10)

	assert.NoError(t, err)
	assert.Equal(t, models.AdjustNotFound, outcome)

	mockUoW.AssertNotCalled(t, "Commit")
	mockPublisher.AssertNotCalled(t, "Publish")
}

func TestLedgerService_GetPendingTransactions(t *testing.T) {
	ctx := context.Background()
	service, _, mockUoW, _, mockTransactionRepo, _ := setupLedgerTest()

	pending := []*models.FavorTransaction{
		{ID: 1, SenderDiscordID: 111, ReceiverDiscordID: 222, Amount: 3, Status: models.TransactionStatusPending},
		{ID: 5, SenderDiscordID: 111, ReceiverDiscordID: 333, Amount: 1, Status: models.TransactionStatusPending},
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransactionRepo.On("GetPendingBySender", ctx, int64(111)).Return(pending, nil)

	result, err := service.GetPendingTransactions(ctx, 111)

	assert.NoError(t, err)
	assert.Equal(t, pending, result)

	mockUoW.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
}
