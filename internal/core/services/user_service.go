package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portsrepo "github.com/tellerdesk/teller_backend/internal/core/ports/repositories"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
	"github.com/tellerdesk/teller_backend/internal/dto"
	"github.com/tellerdesk/teller_backend/internal/middleware"
	"github.com/tellerdesk/teller_backend/internal/utils"
)

// userService provides signup, login and credential recovery.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	tokenSvc portssvc.TokenSvcFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, tokenSvc portssvc.TokenSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a new user and returns it with a session token.
// The requested role defaults to "user" when absent.
func (s *userService) Register(ctx context.Context, req dto.SignupRequest) (*domain.User, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return nil, "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: user with email %s", apperrors.ErrDuplicate, req.Email)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to save user: %w", err)
	}

	token, err := s.tokenSvc.IssueToken(user.UserID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token for new user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password are deliberately indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, req dto.SigninRequest) (*domain.User, string, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthenticated)
		}
		return nil, "", fmt.Errorf("failed to look up user for login: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthenticated)
	}

	token, err := s.tokenSvc.IssueToken(user.UserID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// CreateStaff creates a cashier user. Admin only.
func (s *userService) CreateStaff(ctx context.Context, principal domain.Principal, req dto.CreateStaffRequest) (*domain.User, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if principal.Role != domain.RoleAdmin {
		return nil, "", fmt.Errorf("%w: admins only", apperrors.ErrForbidden)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: user with email %s", apperrors.ErrDuplicate, req.Email)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	staff := domain.User{
		UserID:       uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleStaff,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, staff); err != nil {
		return nil, "", fmt.Errorf("failed to save staff user: %w", err)
	}

	token, err := s.tokenSvc.IssueToken(staff.UserID, staff.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token for staff: %w", err)
	}

	logger.Info("Staff user created", slog.String("staff_id", staff.UserID), slog.String("created_by", principal.UserID))
	return &staff, token, nil
}

// RequestPasswordReset issues a short-lived reset token. Email delivery is
// simulated by logging; the token is also returned to the caller.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := s.tokenSvc.IssueResetToken(user.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}

	logger.Info("Password reset token issued", slog.String("user_id", user.UserID))
	return token, nil
}

// ResetPassword verifies a reset token and replaces the user's password.
func (s *userService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	userID, err := s.tokenSvc.VerifyResetToken(token)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	return s.userRepo.UpdateUserPassword(ctx, user.UserID, hash, time.Now().UTC())
}

// GetUserByID retrieves a user by id.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
