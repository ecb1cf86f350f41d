package models

import "time"

// PasswordReset is a single-use reset ticket keyed by email. A new request
// overwrites any prior ticket for the same email.
type PasswordReset struct {
	Email     string    `json:"email"`
	Code      string    `json:"-"` // 6-digit numeric, never echoed in listings
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// ForgotPasswordRequest starts the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyResetCodeRequest checks an entered code against the stored ticket.
type VerifyResetCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResetPasswordRequest completes the flow with a new credential.
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
