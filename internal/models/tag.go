package models

import "time"

// IdentityTag is a curated theme label (e.g. "trans-joy") that drives
// keyword-based discovery. KeywordID caches the provider-side keyword id
// once it has been resolved; it is reused on every later generation.
type IdentityTag struct {
	ID          int64      `json:"id,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	KeywordID   *int64     `json:"keyword_id,omitempty"`
	IsCurated   bool       `json:"is_curated"`
	AccentColor string     `json:"accent_color,omitempty"`
	Emoji       string     `json:"emoji,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
