package store

import (
	"context"
	"errors"

	"github.com/marqueehq/marquee/internal/models"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

// ReconcileArgs carries everything needed to synchronize one generated list
// inside a single transaction.
type ReconcileArgs struct {
	// Tag is the generating identity tag; every reconciled item is
	// (additively) associated with it.
	Tag *models.IdentityTag
	// OwnerID owns the target list.
	OwnerID int64
	// Items is the desired content in display order. Items are upserted by
	// TMDBID; their row ids define the final membership and positions.
	Items []models.MediaItem
	// Title is the resolved list title; an existing list is renamed when it
	// differs.
	Title string
	// Description seeds a newly created list.
	Description string
	// UpdateDescription reconciles Description onto an existing list too
	// (set when the caller explicitly supplied one).
	UpdateDescription bool
	// Visibility is the target visibility.
	Visibility string
}

// ListEntry is a membership row joined with its media item, ordered by
// position, as presentation consumers read it.
type ListEntry struct {
	models.MediaListItem
	Item models.MediaItem `json:"item"`
}

// Store defines persistence for identity tags, media items, and lists.
type Store interface {
	// GetTagBySlug returns a tag by its slug, or ErrNotFound.
	GetTagBySlug(ctx context.Context, slug string) (*models.IdentityTag, error)
	// ListTags returns all identity tags ordered by name.
	ListTags(ctx context.Context) ([]models.IdentityTag, error)
	// SetTagKeywordID persists a resolved provider keyword id onto a tag.
	// Writing the same id again is a no-op for correctness.
	SetTagKeywordID(ctx context.Context, tagID, keywordID int64) error

	// ReconcileList upserts the backing media items and synchronizes the
	// target list's membership and ordering in one atomic transaction,
	// returning the reconciled list.
	ReconcileList(ctx context.Context, args ReconcileArgs) (*models.MediaList, error)

	// GetListBySlug returns a list by slug, or ErrNotFound.
	GetListBySlug(ctx context.Context, slug string) (*models.MediaList, error)
	// ListMediaLists returns lists, optionally filtered by owner.
	ListMediaLists(ctx context.Context, ownerID *int64) ([]models.MediaList, error)
	// ListEntries returns a list's membership rows with their items,
	// ordered by position.
	ListEntries(ctx context.Context, listID int64) ([]ListEntry, error)
	// GetMediaItemByTMDBID returns a media item by provider id, or ErrNotFound.
	GetMediaItemByTMDBID(ctx context.Context, tmdbID int64) (*models.MediaItem, error)
}
