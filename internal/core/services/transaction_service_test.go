package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
	"github.com/tellerdesk/teller_backend/internal/core/services"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	mockAccRepo *MockAccountRepository
	service     portssvc.TransactionSvcFacade

	staff domain.Principal
	owner domain.Principal
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccRepo)

	suite.staff = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleStaff}
	suite.owner = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleUser}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCredit_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	amount := decimal.NewFromInt(300)

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == accountID &&
			txn.CashierID == suite.staff.UserID &&
			txn.Type == domain.Credit &&
			txn.Amount.Equal(amount) &&
			txn.CreatedAt.IsZero()
	})).Return(&domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		CashierID:     suite.staff.UserID,
		Type:          domain.Credit,
		Amount:        amount,
		NewBalance:    decimal.NewFromInt(800),
	}, nil).Once()

	txn, err := suite.service.Credit(ctx, suite.staff, accountID, amount)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.True(txn.NewBalance.Equal(decimal.NewFromInt(800)))
	suite.Equal(suite.staff.UserID, txn.CashierID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDebit_TimestampLeftToRepository() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stamped := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	// The repository stamps CreatedAt while holding the account row lock, so
	// per-account timestamp order matches commit order. The service must hand
	// over a zero CreatedAt and return the repository's stamped one.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.CreatedAt.IsZero()
	})).Return(&domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		CashierID:     suite.staff.UserID,
		Type:          domain.Debit,
		Amount:        decimal.NewFromInt(100),
		NewBalance:    decimal.NewFromInt(400),
		CreatedAt:     stamped,
	}, nil).Once()

	txn, err := suite.service.Debit(ctx, suite.staff, accountID, decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.Equal(stamped, txn.CreatedAt)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDebit_InsufficientFunds() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	txn, err := suite.service.Debit(ctx, suite.staff, accountID, decimal.NewFromInt(1000))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestCredit_NonStaffForbidden() {
	ctx := context.Background()

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleAdmin} {
		principal := domain.Principal{UserID: uuid.NewString(), Role: role}

		txn, err := suite.service.Credit(ctx, principal, uuid.NewString(), decimal.NewFromInt(100))

		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrForbidden)
		suite.Nil(txn)
	}
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDebit_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		txn, err := suite.service.Debit(ctx, suite.staff, uuid.NewString(), amount)

		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(txn)
	}
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCredit_UnknownAccount() {
	ctx := context.Background()

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.Credit(ctx, suite.staff, uuid.NewString(), decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestGetHistory_OwnerSuccess() {
	ctx := context.Background()
	accountID := uuid.NewString()
	history := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: accountID, Type: domain.Debit},
		{TransactionID: uuid.NewString(), AccountID: accountID, Type: domain.Credit},
	}

	suite.mockAccRepo.On("FindAccountByIDAndOwner", ctx, accountID, suite.owner.UserID).
		Return(&domain.Account{AccountID: accountID, OwnerUserID: suite.owner.UserID}, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountID", ctx, accountID).Return(history, nil).Once()

	txns, err := suite.service.GetHistory(ctx, suite.owner, accountID)

	suite.Require().NoError(err)
	suite.Len(txns, 2)
}

func (suite *TransactionServiceTestSuite) TestGetHistory_ForeignAccountLooksMissing() {
	ctx := context.Background()
	accountID := uuid.NewString()

	// The ownership-scoped lookup collapses "exists but foreign" into not-found
	suite.mockAccRepo.On("FindAccountByIDAndOwner", ctx, accountID, suite.owner.UserID).
		Return(nil, apperrors.ErrNotFound).Once()

	txns, err := suite.service.GetHistory(ctx, suite.owner, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txns)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionsByAccountID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_OwnerSuccess() {
	ctx := context.Background()
	accountID := uuid.NewString()
	txnID := uuid.NewString()
	stored := &domain.Transaction{TransactionID: txnID, AccountID: accountID, Type: domain.Credit}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()
	suite.mockAccRepo.On("FindAccountByIDAndOwner", ctx, accountID, suite.owner.UserID).
		Return(&domain.Account{AccountID: accountID, OwnerUserID: suite.owner.UserID}, nil).Once()

	txn, err := suite.service.GetTransactionByID(ctx, suite.owner, txnID)

	suite.Require().NoError(err)
	suite.Equal(txnID, txn.TransactionID)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_ForeignIsForbidden() {
	ctx := context.Background()
	accountID := uuid.NewString()
	txnID := uuid.NewString()
	stored := &domain.Transaction{TransactionID: txnID, AccountID: accountID, Type: domain.Credit}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()
	suite.mockAccRepo.On("FindAccountByIDAndOwner", ctx, accountID, suite.owner.UserID).
		Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransactionByID(ctx, suite.owner, txnID)

	// The transaction id already proved existence, so this is forbidden, not missing
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_Missing() {
	ctx := context.Background()
	txnID := uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransactionByID(ctx, suite.owner, txnID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
	suite.mockAccRepo.AssertNotCalled(suite.T(), "FindAccountByIDAndOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
