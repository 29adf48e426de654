package model

import "time"

// AmountCategory classifies how much came out of a successful movement.
type AmountCategory string

const (
	AmountLarge    AmountCategory = "large"
	AmountNormal   AmountCategory = "normal"
	AmountSmall    AmountCategory = "small"
	AmountAbnormal AmountCategory = "abnormal"
)

// ValidAmount reports whether s is one of the known amount categories.
func ValidAmount(s string) bool {
	switch AmountCategory(s) {
	case AmountLarge, AmountNormal, AmountSmall, AmountAbnormal:
		return true
	}
	return false
}

// Record represents one logged bowel-movement event.
// Records are created and deleted by explicit user action, never updated.
type Record struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         *time.Time      `json:"end_time,omitempty"`
	DurationSeconds *int            `json:"duration_seconds,omitempty"`
	Success         bool            `json:"success"`
	Amount          *AmountCategory `json:"amount,omitempty"`
	Memo            *string         `json:"memo,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// IsAbnormal reports whether the record carries the abnormal amount category.
// Amount is only set on successful records, so success is implied.
func (r Record) IsAbnormal() bool {
	return r.Amount != nil && *r.Amount == AmountAbnormal
}

// Article represents a published health article shown in the app's feed.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ArticlePage is one page of the article feed.
type ArticlePage struct {
	Articles   []Article `json:"articles"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int       `json:"total_count"`
}
