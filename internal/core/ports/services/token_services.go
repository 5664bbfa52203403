package services

import (
	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// TokenSvcFacade issues and verifies signed bearer tokens. Verification is
// stateless: the role inside a token is trusted as of issuance time and is
// not re-checked against the store.
type TokenSvcFacade interface {
	// IssueToken produces a signed session token binding the subject id and role.
	IssueToken(userID string, role domain.Role) (string, error)

	// IssueResetToken produces a short-lived password reset token.
	IssueResetToken(userID string) (string, error)

	// VerifyToken validates a session token and returns the principal it
	// carries, or apperrors.ErrUnauthenticated.
	VerifyToken(token string) (*domain.Principal, error)

	// VerifyResetToken validates a reset token and returns its subject id.
	VerifyResetToken(token string) (string, error)
}
