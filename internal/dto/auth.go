package dto

import (
	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// SignupRequest defines the data needed to register a new user.
// Role is optional and defaults to "user" when absent.
type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role"`
}

// SigninRequest defines the login credentials.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateStaffRequest defines the data needed to create a cashier user.
type CreateStaffRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// PasswordResetRequest asks for a reset token for the given email.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries a reset token and the replacement password.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse defines the data returned for a user. The password hash is
// never included.
type UserResponse struct {
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}

// AuthResponse is returned by signup, signin and staff creation.
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// PasswordResetResponse is returned by the reset token request endpoint.
// The token is echoed back because email delivery is simulated.
type PasswordResetResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}
