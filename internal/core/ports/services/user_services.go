package services

import (
	"context"

	"github.com/tellerdesk/teller_backend/internal/core/domain"
	"github.com/tellerdesk/teller_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines signup, login and credential recovery operations.
type UserAuthSvc interface {
	// Register creates a new user and returns it with a session token.
	Register(ctx context.Context, req dto.SignupRequest) (*domain.User, string, error)

	// Login authenticates by email and password and returns the user with a
	// session token. Unknown email and wrong password are indistinguishable.
	Login(ctx context.Context, req dto.SigninRequest) (*domain.User, string, error)

	// CreateStaff creates a cashier user. Admin only.
	CreateStaff(ctx context.Context, principal domain.Principal, req dto.CreateStaffRequest) (*domain.User, string, error)

	// RequestPasswordReset issues a short-lived reset token for the given email.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword verifies a reset token and replaces the user's password.
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
}
