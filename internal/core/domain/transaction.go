package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction credits or debits the account.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// Transaction is one immutable entry in an account's ledger. Entries are
// append-only; replaying them in creation order from the initial deposit
// reproduces the current balance.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	AccountID     string          `json:"accountID"`
	CashierID     string          `json:"cashierID"` // Staff user who executed it
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`     // Strictly positive
	NewBalance    decimal.Decimal `json:"newBalance"` // Account balance immediately after this entry
	CreatedAt     time.Time       `json:"createdAt"`
}
