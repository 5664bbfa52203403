package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portsrepo "github.com/tellerdesk/teller_backend/internal/core/ports/repositories"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
	"github.com/tellerdesk/teller_backend/internal/middleware"
)

// transactionService is the teller engine: it validates preconditions and
// delegates the atomic balance-plus-ledger write to the repository.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// Credit deposits amount into the account. Staff only.
func (s *transactionService) Credit(ctx context.Context, principal domain.Principal, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	return s.apply(ctx, principal, accountID, domain.Credit, amount)
}

// Debit withdraws amount from the account. Staff only. A debit exceeding the
// balance fails with ErrInsufficientFunds and leaves the account untouched.
func (s *transactionService) Debit(ctx context.Context, principal domain.Principal, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	return s.apply(ctx, principal, accountID, domain.Debit, amount)
}

// apply runs the shared teller preconditions, then hands the mutation to the
// repository as one atomic unit. The sufficient-funds check happens inside
// the repository against the locked row, not here, so concurrent debits
// cannot both observe the same balance.
func (s *transactionService) apply(ctx context.Context, principal domain.Principal, accountID string, txnType domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if principal.Role != domain.RoleStaff {
		return nil, fmt.Errorf("%w: only staff can process transactions", apperrors.ErrForbidden)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	// CreatedAt is left zero here: the repository stamps it while holding the
	// account row lock, so ledger timestamps follow commit order per account.
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		CashierID:     principal.UserID,
		Type:          txnType,
		Amount:        amount,
	}

	created, err := s.transactionRepo.SaveTransaction(ctx, txn)
	if err != nil {
		return nil, err
	}

	logger.Info("Teller transaction applied",
		slog.String("transaction_id", created.TransactionID),
		slog.String("account_id", accountID),
		slog.String("type", string(txnType)),
		slog.String("cashier_id", principal.UserID),
	)
	return created, nil
}

// GetHistory returns the account's transactions, most recent first. Owner
// only, with no staff or admin bypass; a missing account and a foreign
// account are indistinguishable.
func (s *transactionService) GetHistory(ctx context.Context, principal domain.Principal, accountID string) ([]domain.Transaction, error) {
	if _, err := s.accountRepo.FindAccountByIDAndOwner(ctx, accountID, principal.UserID); err != nil {
		return nil, err
	}
	return s.transactionRepo.FindTransactionsByAccountID(ctx, accountID)
}

// GetTransactionByID returns a single transaction after checking that the
// principal owns the parent account. Unlike GetHistory, a transaction that
// exists but belongs to someone else surfaces as Forbidden: the transaction
// id itself already proved existence.
func (s *transactionService) GetTransactionByID(ctx context.Context, principal domain.Principal, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.FindAccountByIDAndOwner(ctx, txn.AccountID, principal.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction belongs to another account", apperrors.ErrForbidden)
		}
		return nil, err
	}

	return txn, nil
}
