package repositories

import (
	"context"
	"time"

	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a specific user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserPassword replaces the stored password hash for a user.
	UpdateUserPassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
