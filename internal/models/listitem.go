package models

import "time"

// MediaListItem pins one media item at one position within one list.
// Unique on (ListID, ItemID); positions form a dense 1..N sequence after
// every reconciliation. Notes and AddedBy are written by other collaborators
// and must survive position-only updates.
type MediaListItem struct {
	ID        int64      `json:"id,omitempty"`
	ListID    int64      `json:"list_id"`
	ItemID    int64      `json:"item_id"`
	Position  int        `json:"position"`
	Notes     string     `json:"notes,omitempty"`
	AddedBy   *int64     `json:"added_by,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
