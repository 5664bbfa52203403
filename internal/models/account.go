package models

import "github.com/shopspring/decimal"

// Account is the DB representation of an account row.
type Account struct {
	AccountID     string          `db:"account_id"`
	OwnerUserID   string          `db:"owner_user_id"`
	AccountNumber string          `db:"account_number"`
	Type          string          `db:"type"`
	Balance       decimal.Decimal `db:"balance"`
	Status        string          `db:"status"`
	AuditFields
}
