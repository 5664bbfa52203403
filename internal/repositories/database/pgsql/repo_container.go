package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tellerdesk/teller_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
	}
}
