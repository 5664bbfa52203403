package services

import (
	"context"

	"github.com/tellerdesk/teller_backend/internal/core/domain"
	"github.com/tellerdesk/teller_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// ListAccounts retrieves all accounts with owner identity joined in.
	// Admin and staff only.
	ListAccounts(ctx context.Context, principal domain.Principal) ([]domain.AccountWithOwner, error)

	// ListAccountsForUser retrieves all accounts owned by userID. Admin and
	// staff may query any user; everyone else only themselves.
	ListAccountsForUser(ctx context.Context, principal domain.Principal, userID string) ([]domain.AccountWithOwner, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new account for the principal.
	CreateAccount(ctx context.Context, principal domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccountStatus sets the lifecycle status of an account. Admin and
	// staff only; the status must be a known enum value.
	UpdateAccountStatus(ctx context.Context, principal domain.Principal, accountID string, status string) (*domain.Account, error)

	// DeleteAccount removes an account permanently. The role gate restricts
	// this to admins before it is reached.
	DeleteAccount(ctx context.Context, principal domain.Principal, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
