package models

import "time"

// MediaList is a named, ordered collection of media items. Generated lists
// carry a deterministic slug derived from their source tag, so repeated
// generations for the same tag and owner always land on the same row.
type MediaList struct {
	ID          int64      `json:"id,omitempty"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	OwnerID     int64      `json:"owner_id"`
	Visibility  string     `json:"visibility"`
	IsDynamic   bool       `json:"is_dynamic"`
	SourceTagID *int64     `json:"source_tag_id,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
