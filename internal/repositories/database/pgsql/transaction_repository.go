package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portsrepo "github.com/tellerdesk/teller_backend/internal/core/ports/repositories"
	"github.com/tellerdesk/teller_backend/internal/models"
	"github.com/tellerdesk/teller_backend/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// applyToBalance computes the post-transaction balance. A debit larger than
// the current balance fails with ErrInsufficientFunds. Callers must hold the
// account row lock so the balance they pass in is the one they will mutate.
func applyToBalance(balance decimal.Decimal, txnType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	switch txnType {
	case domain.Credit:
		return balance.Add(amount), nil
	case domain.Debit:
		if amount.GreaterThan(balance) {
			return decimal.Decimal{}, fmt.Errorf("%w: debit of %s exceeds balance %s", apperrors.ErrInsufficientFunds, amount, balance)
		}
		return balance.Sub(amount), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txnType)
	}
}

// SaveTransaction applies a teller transaction as a single database
// transaction. The account row is locked FOR UPDATE so concurrent teller
// operations on the same account serialize: the sufficient-funds check for a
// debit always runs against the balance it will mutate. The balance update
// and the ledger insert commit together or not at all. CreatedAt is stamped
// while the lock is held, so per-account timestamp order matches commit order.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	var balance decimal.Decimal
	lockQuery := `
		SELECT balance
		FROM accounts
		WHERE account_id = $1
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, lockQuery, txn.AccountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock account "+txn.AccountID, err)
	}

	newBalance, err := applyToBalance(balance, txn.Type, txn.Amount)
	if err != nil {
		return nil, err
	}
	txn.CreatedAt = time.Now().UTC()

	updateQuery := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3
		WHERE account_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, txn.AccountID, newBalance, txn.CreatedAt); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update balance for account "+txn.AccountID, err)
	}

	txn.NewBalance = newBalance
	modelTxn := mapping.ToModelTransaction(txn)

	insertQuery := `
		INSERT INTO transactions (transaction_id, account_id, cashier_id, type, amount, new_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.CashierID,
		modelTxn.Type,
		modelTxn.Amount,
		modelTxn.NewBalance,
		modelTxn.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, account_id, cashier_id, type, amount, new_balance, created_at
		FROM transactions
		WHERE transaction_id = $1;
	`
	var modelTxn models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&modelTxn.TransactionID,
		&modelTxn.AccountID,
		&modelTxn.CashierID,
		&modelTxn.Type,
		&modelTxn.Amount,
		&modelTxn.NewBalance,
		&modelTxn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// FindTransactionsByAccountID retrieves all transactions for an account,
// most recent first.
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, account_id, cashier_id, type, amount, new_balance, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		var modelTxn models.Transaction
		err := rows.Scan(
			&modelTxn.TransactionID,
			&modelTxn.AccountID,
			&modelTxn.CashierID,
			&modelTxn.Type,
			&modelTxn.Amount,
			&modelTxn.NewBalance,
			&modelTxn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, modelTxn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}
