package models

import "time"

// Announcement is an information bulletin posted by an admin and visible
// to all citizens.
type Announcement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAnnouncementRequest is the admin request body.
type CreateAnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
