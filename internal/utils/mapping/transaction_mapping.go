package mapping

import (
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	"github.com/tellerdesk/teller_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		CashierID:     d.CashierID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		NewBalance:    d.NewBalance,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		CashierID:     m.CashierID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		NewBalance:    m.NewBalance,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
