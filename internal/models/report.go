package models

import "time"

// ReportStatus is the closed set of report states. A report starts as
// pending and moves to complete exactly once; no other edges exist.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusComplete ReportStatus = "complete"
)

// ReportPriority is set by the reporting citizen at submission time.
type ReportPriority string

const (
	PriorityLow    ReportPriority = "low"
	PriorityMedium ReportPriority = "medium"
	PriorityHigh   ReportPriority = "high"
)

// Valid reports whether p is a known priority.
func (p ReportPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Report struct {
	ID          int64          `json:"id"`
	UserID      string         `json:"user_id"`
	Description string         `json:"description"`
	ImageURLs   []string       `json:"image_urls"` // 1-3 entries
	Lat         float64        `json:"lat"`
	Lng         float64        `json:"lng"`
	Priority    ReportPriority `json:"priority"`
	Status      ReportStatus   `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`

	// Resolution fields, populated iff Status == complete
	ResolvedAt          *time.Time `json:"resolved_at,omitempty"`
	FeedbackBy          *string    `json:"feedback_by,omitempty"`
	FeedbackDescription *string    `json:"feedback_description,omitempty"`
	FeedbackImageURLs   []string   `json:"feedback_image_urls,omitempty"`

	// Display fields resolved against the owning account; fall back to
	// sentinel strings when the account has been deleted.
	UserName    string `json:"user_name,omitempty"`
	UserAddress string `json:"user_address,omitempty"`

	// DistanceMeters is set only on admin listings that supply a reference
	// coordinate; nil means no reference was available.
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

// ListScope selects whose reports a listing returns. Warga sessions are
// always forced to ScopeOwn regardless of what they request.
type ListScope string

const (
	ScopeOwn ListScope = "own"
	ScopeAll ListScope = "all"
)

// ReportPage is one page of a cursor-paginated listing.
type ReportPage struct {
	Reports    []*Report `json:"reports"`
	NextCursor string    `json:"next_cursor,omitempty"`
	HasMore    bool      `json:"has_more"`
}

// RecapRow is one line of the yearly tabular summary.
type RecapRow struct {
	Rank       int            `json:"rank"`
	Reporter   string         `json:"reporter"`
	Address    string         `json:"address"`
	Priority   ReportPriority `json:"priority"`
	Status     ReportStatus   `json:"status"`
	ReportedAt time.Time      `json:"reported_at"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`
}
