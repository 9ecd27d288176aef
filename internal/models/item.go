package models

import (
	"encoding/json"
	"time"
)

// MediaItem is the canonical record for one TMDB catalog entry.
// TMDBID is the reconciliation key: there is exactly one row per provider id,
// and repeated generations update the row in place.
type MediaItem struct {
	ID            int64           `json:"id,omitempty"`
	TMDBID        int64           `json:"tmdb_id"`
	MediaType     string          `json:"media_type"`
	Title         string          `json:"title"`
	OriginalTitle string          `json:"original_title,omitempty"`
	ReleaseDate   *time.Time      `json:"release_date,omitempty"`
	PosterURL     string          `json:"poster_url,omitempty"`
	BackdropURL   string          `json:"backdrop_url,omitempty"`
	Overview      string          `json:"overview,omitempty"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}
