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
	"github.com/tellerdesk/teller_backend/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByIDAndOwner(ctx context.Context, accountID string, ownerUserID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.AccountWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountWithOwner), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.AccountWithOwner, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountWithOwner), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedAt time.Time) error {
	args := m.Called(ctx, accountID, status, updatedAt)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockAccountRepository
	mockUserRepo *MockUserRepository
	service      portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockUserRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleUser}
	deposit := decimal.NewFromInt(500)
	req := dto.CreateAccountRequest{Type: "savings", InitialDeposit: &deposit}

	suite.mockUserRepo.On("FindUserByID", ctx, principal.UserID).Return(&domain.User{UserID: principal.UserID}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, principal, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.NotEmpty(account.AccountNumber)
	suite.Equal(principal.UserID, account.OwnerUserID)
	suite.Equal(domain.StatusActive, account.Status)
	suite.True(account.Balance.Equal(deposit))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NoDepositDefaultsToZero() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleUser}

	suite.mockUserRepo.On("FindUserByID", ctx, principal.UserID).Return(&domain.User{UserID: principal.UserID}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, principal, dto.CreateAccountRequest{Type: "current"})

	suite.Require().NoError(err)
	suite.True(account.Balance.IsZero())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RetriesOnNumberCollision() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleUser}

	suite.mockUserRepo.On("FindUserByID", ctx, principal.UserID).Return(&domain.User{UserID: principal.UserID}, nil).Once()
	// First generated number collides, the retry succeeds
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, principal, dto.CreateAccountRequest{Type: "savings"})

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 2)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownUser() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleUser}

	suite.mockUserRepo.On("FindUserByID", ctx, principal.UserID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, principal, dto.CreateAccountRequest{Type: "savings"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_ForbiddenForUsers() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleUser}

	accounts, err := suite.service.ListAccounts(ctx, principal)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(accounts)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_StaffAllowed() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleStaff}
	listed := []domain.AccountWithOwner{
		{Account: domain.Account{AccountID: uuid.NewString()}, OwnerEmail: "ada@example.com"},
	}

	suite.mockRepo.On("ListAccounts", ctx).Return(listed, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, principal)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
}

func (suite *AccountServiceTestSuite) TestListAccountsForUser_SelfAllowed() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleUser}
	listed := []domain.AccountWithOwner{
		{Account: domain.Account{AccountID: uuid.NewString(), OwnerUserID: principal.UserID}},
	}

	suite.mockRepo.On("FindAccountsByOwner", ctx, principal.UserID).Return(listed, nil).Once()

	accounts, err := suite.service.ListAccountsForUser(ctx, principal, principal.UserID)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
}

func (suite *AccountServiceTestSuite) TestListAccountsForUser_OtherUserForbidden() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleUser}

	accounts, err := suite.service.ListAccountsForUser(ctx, principal, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(accounts)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountsByOwner", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccountsForUser_EmptyIsNotFound() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	userID := uuid.NewString()

	suite.mockRepo.On("FindAccountsByOwner", ctx, userID).Return([]domain.AccountWithOwner{}, nil).Once()

	accounts, err := suite.service.ListAccountsForUser(ctx, principal, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(accounts)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatus_Success() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleStaff}
	accountID := uuid.NewString()
	updated := &domain.Account{AccountID: accountID, Status: domain.StatusDormant}

	suite.mockRepo.On("UpdateAccountStatus", ctx, accountID, domain.StatusDormant, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(updated, nil).Once()

	account, err := suite.service.UpdateAccountStatus(ctx, principal, accountID, "dormant")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDormant, account.Status)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatus_UnknownStatus() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	account, err := suite.service.UpdateAccountStatus(ctx, principal, uuid.NewString(), "frozen")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatus_MissingAccount() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	accountID := uuid.NewString()

	suite.mockRepo.On("UpdateAccountStatus", ctx, accountID, domain.StatusClosed, mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotFound).Once()

	account, err := suite.service.UpdateAccountStatus(ctx, principal, accountID, "closed")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	accountID := uuid.NewString()

	suite.mockRepo.On("DeleteAccount", ctx, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, principal, accountID)

	suite.Require().NoError(err)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_AlreadyGone() {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	accountID := uuid.NewString()

	suite.mockRepo.On("DeleteAccount", ctx, accountID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, principal, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
