package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// TellerSvc defines the balance-mutating teller operations. Staff only.
type TellerSvc interface {
	// Credit deposits amount into the account and appends a ledger entry.
	Credit(ctx context.Context, principal domain.Principal, accountID string, amount decimal.Decimal) (*domain.Transaction, error)

	// Debit withdraws amount from the account and appends a ledger entry.
	// A debit larger than the balance fails with apperrors.ErrInsufficientFunds
	// and leaves the account untouched.
	Debit(ctx context.Context, principal domain.Principal, accountID string, amount decimal.Decimal) (*domain.Transaction, error)
}

// LedgerReaderSvc defines owner-scoped reads of the ledger.
type LedgerReaderSvc interface {
	// GetHistory returns the account's transactions, most recent first. Owner
	// only; a missing account and a foreign account both surface as
	// apperrors.ErrNotFound.
	GetHistory(ctx context.Context, principal domain.Principal, accountID string) ([]domain.Transaction, error)

	// GetTransactionByID returns a single transaction. The principal must own
	// the parent account.
	GetTransactionByID(ctx context.Context, principal domain.Principal, transactionID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines the teller and ledger read interfaces
type TransactionSvcFacade interface {
	TellerSvc
	LedgerReaderSvc
}
