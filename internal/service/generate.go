// Package service wires keyword resolution, discovery, enrichment, and
// reconciliation into the end-to-end list generation operation.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/marqueehq/marquee/internal/catalog"
	"github.com/marqueehq/marquee/internal/keywords"
	"github.com/marqueehq/marquee/internal/logger"
	"github.com/marqueehq/marquee/internal/models"
	"github.com/marqueehq/marquee/internal/store"
)

// ErrInvalidLimit rejects non-positive item counts before any work happens.
var ErrInvalidLimit = errors.New("limit must be positive")

// Catalog is the slice of the TMDB client the generator consumes.
type Catalog interface {
	ResolveKeyword(ctx context.Context, name string) (int64, error)
	DiscoverByKeywords(ctx context.Context, keywordIDs []int64, opts catalog.DiscoverOptions) ([]catalog.MovieSummary, error)
	FetchDetails(ctx context.Context, ids []int64, language, appendToResponse string) (map[int64]*catalog.MovieDetail, error)
}

// Generator produces and refreshes identity-tag media lists.
type Generator struct {
	store   store.Store
	catalog Catalog
	log     *logger.Logger
}

// NewGenerator builds a Generator. A nil logger disables logging.
func NewGenerator(s store.Store, c Catalog, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{store: s, catalog: c, log: log}
}

// GenerateOptions are the caller-supplied knobs for one generation run.
type GenerateOptions struct {
	TagSlug      string
	OwnerID      int64
	Limit        int
	IncludeAdult bool
	Language     string
	Visibility   string // defaults to public
	Title        string // optional override
	Description  string // optional override
}

// Generate resolves the tag's keywords, discovers up to Limit distinct
// titles, enriches and normalizes them, and reconciles the tag's generated
// list. Re-running with an unchanged external result set leaves the list
// untouched apart from unconditionally refreshed metadata. All external API
// traffic completes before the reconciliation transaction opens.
func (g *Generator) Generate(ctx context.Context, opts GenerateOptions) (*models.MediaList, error) {
	if opts.Limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if opts.Visibility == "" {
		opts.Visibility = models.VisibilityPublic
	}

	tag, err := g.store.GetTagBySlug(ctx, opts.TagSlug)
	if err != nil {
		return nil, err
	}

	keywordIDs, err := g.resolveKeywords(ctx, tag)
	if err != nil {
		return nil, err
	}

	summaries, err := g.catalog.DiscoverByKeywords(ctx, keywordIDs, catalog.DiscoverOptions{
		Limit:        opts.Limit,
		IncludeAdult: opts.IncludeAdult,
		Language:     opts.Language,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	details, err := g.catalog.FetchDetails(ctx, ids, opts.Language, catalog.DefaultAppend)
	if err != nil {
		return nil, err
	}

	items := make([]models.MediaItem, 0, len(summaries))
	for i := range summaries {
		movie := catalog.Normalize(&summaries[i], details[summaries[i].ID])
		if movie == nil {
			g.log.Warn("dropping unusable tmdb entry", "tmdb_id", summaries[i].ID, "tag", tag.Slug)
			continue
		}
		items = append(items, mediaItem(movie))
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no tmdb entries could be normalized for tag %q: %w", tag.Slug, catalog.ErrNotFound)
	}

	title := opts.Title
	if title == "" {
		title = tag.Name + " Spotlight"
	}
	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("Films exploring %s journeys", tag.Name)
	}

	list, err := g.store.ReconcileList(ctx, store.ReconcileArgs{
		Tag:               tag,
		OwnerID:           opts.OwnerID,
		Items:             items,
		Title:             title,
		Description:       description,
		UpdateDescription: opts.Description != "",
		Visibility:        opts.Visibility,
	})
	if err != nil {
		return nil, err
	}

	g.log.Info("media list reconciled",
		"tag", tag.Slug, "list", list.Slug, "items", len(items))
	return list, nil
}

// resolveKeywords yields the keyword id set used for discovery: the theme's
// curated grouping when one exists (richest first), otherwise the single
// resolved id.
func (g *Generator) resolveKeywords(ctx context.Context, tag *models.IdentityTag) ([]int64, error) {
	primary, err := g.keywordID(ctx, tag)
	if err != nil {
		return nil, err
	}
	if curated := keywords.ForTheme(tag.Slug); len(curated) > 1 {
		g.log.Debug("using curated keyword set", "tag", tag.Slug, "count", len(curated))
		return curated, nil
	}
	return []int64{primary}, nil
}

// keywordID implements the resolve-then-cache contract: cached id on the
// tag, else curated table, else live text search — the winner is persisted
// back onto the tag so later generations skip resolution entirely.
func (g *Generator) keywordID(ctx context.Context, tag *models.IdentityTag) (int64, error) {
	if tag.KeywordID != nil {
		return *tag.KeywordID, nil
	}

	if id, ok := keywords.Primary(tag.Slug); ok {
		g.log.Info("using curated keyword id", "tag", tag.Slug, "keyword_id", id)
		if err := g.store.SetTagKeywordID(ctx, tag.ID, id); err != nil {
			return 0, err
		}
		tag.KeywordID = &id
		return id, nil
	}

	id, err := g.catalog.ResolveKeyword(ctx, tag.Name)
	if err != nil {
		return 0, err
	}
	g.log.Info("resolved keyword id via search", "tag", tag.Slug, "keyword_id", id)
	if err := g.store.SetTagKeywordID(ctx, tag.ID, id); err != nil {
		return 0, err
	}
	tag.KeywordID = &id
	return id, nil
}

// mediaItem maps a normalized movie onto the persisted item shape.
func mediaItem(m *catalog.Movie) models.MediaItem {
	original := m.OriginalTitle
	if original == "" {
		original = m.Title
	}
	return models.MediaItem{
		TMDBID:        m.TMDBID,
		MediaType:     m.MediaType,
		Title:         m.Title,
		OriginalTitle: original,
		ReleaseDate:   m.ReleaseDate,
		PosterURL:     m.PosterURL,
		BackdropURL:   m.BackdropURL,
		Overview:      m.Overview,
		Metadata:      m.Metadata,
	}
}
