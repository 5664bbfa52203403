package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
// Type is intentionally not validated against an enum here; the create path
// only verifies that the requesting user exists.
type CreateAccountRequest struct {
	Type           string           `json:"type" binding:"required"`
	InitialDeposit *decimal.Decimal `json:"initialDeposit"` // Optional, treated as 0 when absent or negative
}

// UpdateAccountStatusRequest defines the status patch payload.
type UpdateAccountStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	OwnerUserID   string               `json:"ownerUserID"`
	AccountNumber string               `json:"accountNumber"`
	Type          domain.AccountType   `json:"type"`
	Balance       decimal.Decimal      `json:"balance"`
	Status        domain.AccountStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// AccountWithOwnerResponse is an account with the owner's identity joined in,
// returned by the admin/staff listing endpoints.
type AccountWithOwnerResponse struct {
	AccountResponse
	OwnerFirstName string `json:"ownerFirstName"`
	OwnerLastName  string `json:"ownerLastName"`
	OwnerEmail     string `json:"ownerEmail"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		OwnerUserID:   acc.OwnerUserID,
		AccountNumber: acc.AccountNumber,
		Type:          acc.Type,
		Balance:       acc.Balance,
		Status:        acc.Status,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToAccountWithOwnerResponse converts a domain.AccountWithOwner to its DTO
func ToAccountWithOwnerResponse(acc domain.AccountWithOwner) AccountWithOwnerResponse {
	return AccountWithOwnerResponse{
		AccountResponse: ToAccountResponse(&acc.Account),
		OwnerFirstName:  acc.OwnerFirstName,
		OwnerLastName:   acc.OwnerLastName,
		OwnerEmail:      acc.OwnerEmail,
	}
}

// ToListAccountWithOwnerResponse converts a slice of domain.AccountWithOwner
func ToListAccountWithOwnerResponse(accounts []domain.AccountWithOwner) []AccountWithOwnerResponse {
	res := make([]AccountWithOwnerResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountWithOwnerResponse(acc)
	}
	return res
}
