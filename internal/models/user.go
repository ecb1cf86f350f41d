package models

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleWarga Role = "warga" // citizen/resident
	RoleAdmin Role = "admin" // municipal staff
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleWarga || r == RoleAdmin
}

type User struct {
	ID           string    `json:"id"` // sequential, zero-padded (001, 002, ...)
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         Role      `json:"role"`
	IsApproved   bool      `json:"is_approved"` // warga can log in only once approved
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the authenticated identity passed explicitly into every
// service call. It is decoded from the JWT by the auth middleware and
// never held as process-wide state.
type Session struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	IsApproved bool   `json:"is_approved"`
}

// IsAdmin reports whether the session belongs to an admin account.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// RegisterRequest represents the request body for citizen registration
type RegisterRequest struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest is an admin-initiated citizen account (created pre-approved)
type CreateUserRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents a password change for a logged-in account
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
