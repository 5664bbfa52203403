package models

// User is the DB representation of a user row.
type User struct {
	UserID       string `db:"user_id"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	AuditFields
}
