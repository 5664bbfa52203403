package services

import (
	portsrepo "github.com/tellerdesk/teller_backend/internal/core/ports/repositories"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
	"github.com/tellerdesk/teller_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Token service first since user auth depends on it
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiryDuration, cfg.ResetTokenExpiryDuration)

	container.User = NewUserService(repos.UserRepo, container.Token)
	container.Account = NewAccountService(repos.AccountRepo, repos.UserRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo)

	return container
}
