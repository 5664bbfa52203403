package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// TellerRequest is the credit/debit payload. The gt=0 binding works on
// decimal.Decimal through the custom type func in validators.go.
type TellerRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID"`
	CashierID     string                 `json:"cashierID"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	NewBalance    decimal.Decimal        `json:"newBalance"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		CashierID:     txn.CashierID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		NewBalance:    txn.NewBalance,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
