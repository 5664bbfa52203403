package domain

// Role is the closed set of roles a user can hold. Exactly one at a time.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
// PasswordHash is never serialized.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	AuditFields
}

// Principal is the authenticated actor derived from a verified token.
// Role is trusted as of token issuance time, not re-checked against the store.
type Principal struct {
	UserID string
	Role   Role
}

// HasAnyRole reports whether the principal holds one of the given roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
