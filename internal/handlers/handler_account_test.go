package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
	"github.com/tellerdesk/teller_backend/internal/core/services"
	"github.com/tellerdesk/teller_backend/internal/dto"
	"github.com/tellerdesk/teller_backend/internal/handlers"
	"github.com/tellerdesk/teller_backend/internal/platform/config"
)

type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockTxnSvc  *MockTransactionService
	mockAccSvc  *MockAccountService
	mockUserSvc *MockUserService
	tokenSvc    portssvc.TokenSvcFacade
}

func (suite *AccountHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidations()
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.mockTxnSvc = new(MockTransactionService)
	suite.mockAccSvc = new(MockAccountService)
	suite.mockUserSvc = new(MockUserService)
	suite.tokenSvc = services.NewTokenService("handler-test-secret", "teller-backend", time.Hour, 15*time.Minute)

	container := &portssvc.ServiceContainer{
		User:        suite.mockUserSvc,
		Account:     suite.mockAccSvc,
		Transaction: suite.mockTxnSvc,
		Token:       suite.tokenSvc,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{Port: "8080"}, container)
}

func (suite *AccountHandlerTestSuite) tokenFor(role domain.Role) (string, string) {
	userID := uuid.NewString()
	token, err := suite.tokenSvc.IssueToken(userID, role)
	suite.Require().NoError(err)
	return userID, token
}

func (suite *AccountHandlerTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	ownerID, token := suite.tokenFor(domain.RoleUser)

	suite.mockAccSvc.On("CreateAccount", mock.Anything, domain.Principal{UserID: ownerID, Role: domain.RoleUser}, mock.AnythingOfType("dto.CreateAccountRequest")).
		Return(&domain.Account{
			AccountID:     uuid.NewString(),
			OwnerUserID:   ownerID,
			AccountNumber: "ACC1234567890",
			Type:          "savings",
			Balance:       decimal.NewFromInt(500),
			Status:        domain.StatusActive,
		}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", token, gin.H{"type": "savings", "initialDeposit": 500})

	suite.Equal(http.StatusCreated, w.Code)

	var body struct {
		Data dto.AccountResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(ownerID, body.Data.OwnerUserID)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingType() {
	_, token := suite.tokenFor(domain.RoleUser)

	w := suite.do(http.MethodPost, "/api/v1/accounts", token, gin.H{"initialDeposit": 500})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_UserBlockedAtRoute() {
	_, token := suite.tokenFor(domain.RoleUser)

	w := suite.do(http.MethodGet, "/api/v1/accounts", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccSvc.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_StaffSuccess() {
	_, token := suite.tokenFor(domain.RoleStaff)

	suite.mockAccSvc.On("ListAccounts", mock.Anything, mock.AnythingOfType("domain.Principal")).
		Return([]domain.AccountWithOwner{
			{Account: domain.Account{AccountID: uuid.NewString()}, OwnerEmail: "ada@example.com"},
		}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts", token, nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListUserAccounts_NoneIs404() {
	ownerID, token := suite.tokenFor(domain.RoleUser)

	suite.mockAccSvc.On("ListAccountsForUser", mock.Anything, mock.AnythingOfType("domain.Principal"), ownerID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/user/"+ownerID, token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccountStatus_UnknownStatus() {
	_, token := suite.tokenFor(domain.RoleAdmin)
	accountID := uuid.NewString()

	suite.mockAccSvc.On("UpdateAccountStatus", mock.Anything, mock.AnythingOfType("domain.Principal"), accountID, "frozen").
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.do(http.MethodPatch, fmt.Sprintf("/api/v1/accounts/%s/status", accountID), token, gin.H{"status": "frozen"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_StaffBlockedAtRoute() {
	_, token := suite.tokenFor(domain.RoleStaff)

	w := suite.do(http.MethodDelete, "/api/v1/accounts/"+uuid.NewString(), token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccSvc.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_AdminSuccess() {
	_, token := suite.tokenFor(domain.RoleAdmin)
	accountID := uuid.NewString()

	suite.mockAccSvc.On("DeleteAccount", mock.Anything, mock.AnythingOfType("domain.Principal"), accountID).
		Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/"+accountID, token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAccSvc.AssertExpectations(suite.T())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
