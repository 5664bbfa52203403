package mapping

import (
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	"github.com/tellerdesk/teller_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		OwnerUserID:   d.OwnerUserID,
		AccountNumber: d.AccountNumber,
		Type:          string(d.Type),
		Balance:       d.Balance,
		Status:        string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		OwnerUserID:   m.OwnerUserID,
		AccountNumber: m.AccountNumber,
		Type:          domain.AccountType(m.Type),
		Balance:       m.Balance,
		Status:        domain.AccountStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
