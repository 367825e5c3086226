package service

import (
	"context"

	"nakamoto/events"
	"nakamoto/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CreateWithWallet(ctx context.Context, discordID int64, nickname string, startingFavors int64) (*models.User, error) {
	args := m.Called(ctx, discordID, nickname, startingFavors)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateNickname(ctx context.Context, discordID int64, nickname string) error {
	args := m.Called(ctx, discordID, nickname)
	return args.Error(0)
}

func (m *MockUserRepository) GetWallet(ctx context.Context, discordID int64) (*models.Wallet, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockUserRepository) AdjustFavors(ctx context.Context, discordID int64, delta int64) (bool, error) {
	args := m.Called(ctx, discordID, delta)
	return args.Bool(0), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, senderID, receiverID, amount int64) (*models.FavorTransaction, error) {
	args := m.Called(ctx, senderID, receiverID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavorTransaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*models.FavorTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavorTransaction), args.Error(1)
}

func (m *MockTransactionRepository) MarkCompleted(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkCancelled(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetPendingBySender(ctx context.Context, senderID int64) ([]*models.FavorTransaction, error) {
	args := m.Called(ctx, senderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FavorTransaction), args.Error(1)
}

// MockNominationRepository is a mock implementation of NominationRepository
type MockNominationRepository struct {
	mock.Mock
}

func (m *MockNominationRepository) Create(ctx context.Context, nomination *models.Nomination) error {
	args := m.Called(ctx, nomination)
	return args.Error(0)
}

func (m *MockNominationRepository) GetFiltered(ctx context.Context, filter models.NominationFilter) ([]*models.Nomination, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Nomination), args.Error(1)
}

func (m *MockNominationRepository) GetCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock

	userRepo        UserRepository
	transactionRepo TransactionRepository
	nominationRepo  NominationRepository
	eventBus        EventPublisher
}

// SetRepositories wires the repository mocks the unit of work hands out.
// Pass nil for repositories the test never touches.
func (m *MockUnitOfWork) SetRepositories(userRepo UserRepository, transactionRepo TransactionRepository, nominationRepo NominationRepository) {
	m.userRepo = userRepo
	m.transactionRepo = transactionRepo
	m.nominationRepo = nominationRepo
}

// SetEventBus wires the event publisher mock
func (m *MockUnitOfWork) SetEventBus(eventBus EventPublisher) {
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) TransactionRepository() TransactionRepository {
	return m.transactionRepo
}

func (m *MockUnitOfWork) NominationRepository() NominationRepository {
	return m.nominationRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
