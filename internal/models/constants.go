package models

// Media type values stored on media_items.media_type.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// Visibility values stored on media_lists.visibility.
const (
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
	VisibilityPrivate  = "private"
)
