package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portsrepo "github.com/tellerdesk/teller_backend/internal/core/ports/repositories"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
	"github.com/tellerdesk/teller_backend/internal/dto"
	"github.com/tellerdesk/teller_backend/internal/middleware"
	"github.com/tellerdesk/teller_backend/internal/utils"
)

// accountNumberAttempts bounds the retry loop when a freshly generated
// account number collides with an existing one.
const accountNumberAttempts = 5

// accountService manages the account lifecycle.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new account for the principal. The user-existence
// check guards against tokens for since-deleted users; the account type is
// deliberately not validated beyond presence.
func (s *accountService) CreateAccount(ctx context.Context, principal domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userRepo.FindUserByID(ctx, principal.UserID); err != nil {
		return nil, err
	}

	balance := decimal.Zero
	if req.InitialDeposit != nil && !req.InitialDeposit.IsNegative() {
		balance = *req.InitialDeposit
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: principal.UserID,
		Type:        domain.AccountType(req.Type),
		Balance:     balance,
		Status:      domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		number, err := utils.GenerateAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}
		account.AccountNumber = number

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("owner_id", principal.UserID))
			return &account, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("failed to save account: %w", err)
		}
		logger.Warn("Account number collision, regenerating", slog.String("account_number", number))
	}

	return nil, fmt.Errorf("exhausted %d attempts to generate a unique account number", accountNumberAttempts)
}

// ListAccounts retrieves all accounts with owner identity. Admin and staff only.
func (s *accountService) ListAccounts(ctx context.Context, principal domain.Principal) ([]domain.AccountWithOwner, error) {
	if !principal.HasAnyRole(domain.RoleAdmin, domain.RoleStaff) {
		return nil, fmt.Errorf("%w: admins and staff only", apperrors.ErrForbidden)
	}
	return s.accountRepo.ListAccounts(ctx)
}

// ListAccountsForUser retrieves userID's accounts. Admin and staff may query
// any user; everyone else only themselves. An empty result is a not-found.
func (s *accountService) ListAccountsForUser(ctx context.Context, principal domain.Principal, userID string) ([]domain.AccountWithOwner, error) {
	if !principal.HasAnyRole(domain.RoleAdmin, domain.RoleStaff) && principal.UserID != userID {
		return nil, fmt.Errorf("%w: you can only view your own accounts", apperrors.ErrForbidden)
	}

	accounts, err := s.accountRepo.FindAccountsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: no accounts for user %s", apperrors.ErrNotFound, userID)
	}
	return accounts, nil
}

// UpdateAccountStatus sets the lifecycle status of an account. The status is
// validated before the account lookup, so an unknown value fails fast.
func (s *accountService) UpdateAccountStatus(ctx context.Context, principal domain.Principal, accountID string, status string) (*domain.Account, error) {
	if !principal.HasAnyRole(domain.RoleAdmin, domain.RoleStaff) {
		return nil, fmt.Errorf("%w: admins and staff only", apperrors.ErrForbidden)
	}

	newStatus := domain.AccountStatus(status)
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: invalid account status %q", apperrors.ErrValidation, status)
	}

	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, newStatus, time.Now().UTC()); err != nil {
		return nil, err
	}

	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// DeleteAccount removes an account permanently. The admin-only gate runs at
// the route layer before this is reached.
func (s *accountService) DeleteAccount(ctx context.Context, principal domain.Principal, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID), slog.String("deleted_by", principal.UserID))
	return nil
}
