package repositories

import (
	"context"
	"time"

	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByIDAndOwner retrieves an account only when it is owned by
	// ownerUserID. A missing account and an ownership mismatch both surface as
	// apperrors.ErrNotFound so the two are indistinguishable to callers.
	FindAccountByIDAndOwner(ctx context.Context, accountID string, ownerUserID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts with owner identity joined in.
	ListAccounts(ctx context.Context) ([]domain.AccountWithOwner, error)

	// FindAccountsByOwner retrieves all accounts owned by ownerUserID.
	FindAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.AccountWithOwner, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate account number surfaces
	// as apperrors.ErrDuplicate so callers can regenerate and retry.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus sets the lifecycle status of an account.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedAt time.Time) error

	// DeleteAccount removes an account permanently.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
