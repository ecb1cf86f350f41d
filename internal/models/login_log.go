package models

import "time"

// LoginLog records a successful authentication for the admin audit view.
type LoginLog struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	LoginAt   time.Time `json:"login_at"`
}
