package repositories

import (
	"context"

	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// TransactionReader defines read operations for ledger data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByAccountID retrieves all transactions for an account,
	// most recent first.
	FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriter defines the atomic teller write.
type TransactionWriter interface {
	// SaveTransaction applies txn as a single store transaction: the account
	// row is locked, the sufficient-funds check runs for debits against the
	// locked balance (apperrors.ErrInsufficientFunds on failure), and the
	// balance update plus ledger append commit together or not at all.
	// The returned transaction carries the post-mutation NewBalance and a
	// CreatedAt stamped while the lock was held, so per-account timestamp
	// order matches commit order.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
