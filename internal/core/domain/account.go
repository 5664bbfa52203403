package domain

import "github.com/shopspring/decimal"

// AccountType is the product type of a bank account. The create path does not
// validate it beyond binding, so values outside the two known constants can
// exist; only the status enum is enforced.
type AccountType string

const (
	Savings AccountType = "savings"
	Current AccountType = "current"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive  AccountStatus = "active"
	StatusDormant AccountStatus = "dormant"
	StatusClosed  AccountStatus = "closed"
)

// IsValid reports whether s is one of the known statuses.
func (s AccountStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusDormant, StatusClosed:
		return true
	}
	return false
}

// Account represents a bank account owned by a single user.
// Balance never goes below zero; the store enforces this alongside the
// service-level sufficient-funds check.
type Account struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	OwnerUserID   string          `json:"ownerUserID"`
	AccountNumber string          `json:"accountNumber"` // Globally unique, never reused
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Status        AccountStatus   `json:"status"`
	AuditFields
}

// AccountWithOwner is an account joined with its owner's identity, used by
// the admin/staff listing paths.
type AccountWithOwner struct {
	Account
	OwnerFirstName string `json:"ownerFirstName"`
	OwnerLastName  string `json:"ownerLastName"`
	OwnerEmail     string `json:"ownerEmail"`
}
