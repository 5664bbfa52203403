package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the DB representation of a ledger row. Rows are insert-only.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	CashierID     string          `db:"cashier_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	NewBalance    decimal.Decimal `db:"new_balance"`
	CreatedAt     time.Time       `db:"created_at"`
}
