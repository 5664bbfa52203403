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

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)

	query := `
		INSERT INTO users (user_id, first_name, last_name, email, password_hash, role, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		modelUser.UserID,
		modelUser.FirstName,
		modelUser.LastName,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.Role,
		modelUser.CreatedAt,
		modelUser.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, modelUser.Email)
		}
		return fmt.Errorf("failed to save user %s: %w", modelUser.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, first_name, last_name, email, password_hash, role, created_at, last_updated_at
		FROM users
		WHERE user_id = $1;
	`
	return r.scanUser(ctx, query, userID)
}

// FindUserByEmail retrieves a user by their email address.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT user_id, first_name, last_name, email, password_hash, role, created_at, last_updated_at
		FROM users
		WHERE email = $1;
	`
	return r.scanUser(ctx, query, email)
}

func (r *PgxUserRepository) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var modelUser models.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&modelUser.UserID,
		&modelUser.FirstName,
		&modelUser.LastName,
		&modelUser.Email,
		&modelUser.PasswordHash,
		&modelUser.Role,
		&modelUser.CreatedAt,
		&modelUser.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

// UpdateUserPassword replaces the stored password hash for a user.
func (r *PgxUserRepository) UpdateUserPassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	query := `
		UPDATE users
		SET password_hash = $2, last_updated_at = $3
		WHERE user_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, userID, passwordHash, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update password for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
