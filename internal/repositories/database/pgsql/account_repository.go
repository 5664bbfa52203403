package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portsrepo "github.com/tellerdesk/teller_backend/internal/core/ports/repositories"
	"github.com/tellerdesk/teller_backend/internal/models"
	"github.com/tellerdesk/teller_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account. A duplicate account number surfaces as
// ErrDuplicate so the caller can regenerate and retry.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, owner_user_id, account_number, type, balance, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.OwnerUserID,
		modelAcc.AccountNumber,
		modelAcc.Type,
		modelAcc.Balance,
		modelAcc.Status,
		modelAcc.CreatedAt,
		modelAcc.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, modelAcc.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, owner_user_id, account_number, type, balance, status, created_at, last_updated_at
		FROM accounts
		WHERE account_id = $1;
	`
	return r.scanAccount(ctx, query, accountID)
}

// FindAccountByIDAndOwner retrieves an account only when owned by ownerUserID.
// Missing and not-owned both come back as ErrNotFound.
func (r *PgxAccountRepository) FindAccountByIDAndOwner(ctx context.Context, accountID string, ownerUserID string) (*domain.Account, error) {
	query := `
		SELECT account_id, owner_user_id, account_number, type, balance, status, created_at, last_updated_at
		FROM accounts
		WHERE account_id = $1 AND owner_user_id = $2;
	`
	return r.scanAccount(ctx, query, accountID, ownerUserID)
}

func (r *PgxAccountRepository) scanAccount(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	var modelAcc models.Account
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&modelAcc.AccountID,
		&modelAcc.OwnerUserID,
		&modelAcc.AccountNumber,
		&modelAcc.Type,
		&modelAcc.Balance,
		&modelAcc.Status,
		&modelAcc.CreatedAt,
		&modelAcc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

const accountWithOwnerColumns = `
	a.account_id, a.owner_user_id, a.account_number, a.type, a.balance, a.status, a.created_at, a.last_updated_at,
	u.first_name, u.last_name, u.email
`

// ListAccounts retrieves all accounts with the owner's identity joined in.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.AccountWithOwner, error) {
	query := `
		SELECT ` + accountWithOwnerColumns + `
		FROM accounts a
		JOIN users u ON u.user_id = a.owner_user_id
		ORDER BY a.created_at;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	return scanAccountsWithOwner(rows)
}

// FindAccountsByOwner retrieves all accounts owned by ownerUserID.
func (r *PgxAccountRepository) FindAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.AccountWithOwner, error) {
	query := `
		SELECT ` + accountWithOwnerColumns + `
		FROM accounts a
		JOIN users u ON u.user_id = a.owner_user_id
		WHERE a.owner_user_id = $1
		ORDER BY a.created_at;
	`
	rows, err := r.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for owner %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	return scanAccountsWithOwner(rows)
}

func scanAccountsWithOwner(rows pgx.Rows) ([]domain.AccountWithOwner, error) {
	accounts := []domain.AccountWithOwner{}
	for rows.Next() {
		var modelAcc models.Account
		var firstName, lastName, email string
		err := rows.Scan(
			&modelAcc.AccountID,
			&modelAcc.OwnerUserID,
			&modelAcc.AccountNumber,
			&modelAcc.Type,
			&modelAcc.Balance,
			&modelAcc.Status,
			&modelAcc.CreatedAt,
			&modelAcc.LastUpdatedAt,
			&firstName,
			&lastName,
			&email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, domain.AccountWithOwner{
			Account:        mapping.ToDomainAccount(modelAcc),
			OwnerFirstName: firstName,
			OwnerLastName:  lastName,
			OwnerEmail:     email,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccountStatus sets the lifecycle status of an account.
func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedAt time.Time) error {
	query := `
		UPDATE accounts
		SET status = $2, last_updated_at = $3
		WHERE account_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, accountID, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status for account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account permanently. Its transactions go with it
// via the FK cascade.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	query := `DELETE FROM accounts WHERE account_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
