package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marqueehq/marquee/internal/models"
)

// Postgres implements Store using PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store from a DSN. Caller must call Close when done.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

const tagColumns = `id, name, slug, description, keyword_id, is_curated, accent_color, emoji, created_at, updated_at`

func scanTag(row pgx.Row) (*models.IdentityTag, error) {
	var t models.IdentityTag
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.KeywordID,
		&t.IsCurated, &t.AccentColor, &t.Emoji, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTagBySlug returns a tag by slug, or ErrNotFound.
func (p *Postgres) GetTagBySlug(ctx context.Context, slug string) (*models.IdentityTag, error) {
	tag, err := scanTag(p.pool.QueryRow(ctx,
		`SELECT `+tagColumns+` FROM identity_tags WHERE slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tag %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetTagBySlug: %w", err)
	}
	return tag, nil
}

// ListTags returns all identity tags ordered by name.
func (p *Postgres) ListTags(ctx context.Context) ([]models.IdentityTag, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+tagColumns+` FROM identity_tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	defer rows.Close()

	var tags []models.IdentityTag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("ListTags scan: %w", err)
		}
		tags = append(tags, *tag)
	}
	return tags, rows.Err()
}

// SetTagKeywordID persists a resolved keyword id onto a tag. Re-writing the
// same id is harmless.
func (p *Postgres) SetTagKeywordID(ctx context.Context, tagID, keywordID int64) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE identity_tags SET keyword_id = $2, updated_at = NOW() WHERE id = $1`,
		tagID, keywordID)
	if err != nil {
		return fmt.Errorf("SetTagKeywordID: %w", err)
	}
	return nil
}

// ReconcileList runs the full reconciliation in one transaction: item
// upserts, additive tag association, list get-or-create with conditional
// scalar updates, membership diff, and dense position assignment. On any
// failure the transaction rolls back and prior state is untouched.
func (p *Postgres) ReconcileList(ctx context.Context, args ReconcileArgs) (*models.MediaList, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	desired := make([]int64, 0, len(args.Items))
	for i := range args.Items {
		id, err := upsertMediaItemTx(ctx, tx, &args.Items[i])
		if err != nil {
			return nil, err
		}
		if err := linkTagTx(ctx, tx, id, args.Tag.ID); err != nil {
			return nil, err
		}
		desired = append(desired, id)
	}

	list, err := getOrCreateListTx(ctx, tx, args)
	if err != nil {
		return nil, err
	}

	current, err := listMembershipTx(ctx, tx, list.ID)
	if err != nil {
		return nil, err
	}

	if err := applyPlanTx(ctx, tx, list.ID, PlanReconcile(current, desired)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return list, nil
}

// upsertMediaItemTx inserts or fully replaces a media item keyed by its
// TMDB id. The metadata blob is always overwritten with the latest fetch.
func upsertMediaItemTx(ctx context.Context, tx pgx.Tx, item *models.MediaItem) (int64, error) {
	metadata := item.Metadata
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}
	var id int64
	err := tx.QueryRow(ctx,
		`INSERT INTO media_items
		   (tmdb_id, media_type, title, original_title, release_date, poster_url, backdrop_url, overview, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (tmdb_id) DO UPDATE SET
		   media_type = EXCLUDED.media_type,
		   title = EXCLUDED.title,
		   original_title = EXCLUDED.original_title,
		   release_date = EXCLUDED.release_date,
		   poster_url = EXCLUDED.poster_url,
		   backdrop_url = EXCLUDED.backdrop_url,
		   overview = EXCLUDED.overview,
		   metadata = EXCLUDED.metadata,
		   updated_at = NOW()
		 RETURNING id`,
		item.TMDBID, item.MediaType, item.Title, item.OriginalTitle, item.ReleaseDate,
		item.PosterURL, item.BackdropURL, item.Overview, metadata,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert media item %d: %w", item.TMDBID, err)
	}
	item.ID = id
	return id, nil
}

// linkTagTx associates an item with a tag. Associations are additive; this
// never removes links made by other runs.
func linkTagTx(ctx context.Context, tx pgx.Tx, itemID, tagID int64) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO media_item_tags (item_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		itemID, tagID)
	if err != nil {
		return fmt.Errorf("link tag: %w", err)
	}
	return nil
}

const listColumns = `id, slug, title, description, owner_id, visibility, is_dynamic, source_tag_id, created_at, updated_at`

func scanList(row pgx.Row) (*models.MediaList, error) {
	var l models.MediaList
	err := row.Scan(&l.ID, &l.Slug, &l.Title, &l.Description, &l.OwnerID,
		&l.Visibility, &l.IsDynamic, &l.SourceTagID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// getOrCreateListTx locates the list by its deterministic slug, creating it
// on first generation. Scalar fields of an existing list are updated only
// when the caller-supplied values differ, avoiding timestamp churn.
func getOrCreateListTx(ctx context.Context, tx pgx.Tx, args ReconcileArgs) (*models.MediaList, error) {
	slug := GeneratedListSlug(args.Tag)

	list, err := scanList(tx.QueryRow(ctx,
		`SELECT `+listColumns+` FROM media_lists WHERE slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		list, err = scanList(tx.QueryRow(ctx,
			`INSERT INTO media_lists (slug, title, description, owner_id, visibility, is_dynamic, source_tag_id)
			 VALUES ($1, $2, $3, $4, $5, TRUE, $6)
			 RETURNING `+listColumns,
			slug, args.Title, args.Description, args.OwnerID, args.Visibility, args.Tag.ID))
		if err != nil {
			return nil, fmt.Errorf("create list %q: %w", slug, err)
		}
		return list, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list %q: %w", slug, err)
	}

	changed := false
	if list.Title != args.Title {
		list.Title = args.Title
		changed = true
	}
	if args.UpdateDescription && list.Description != args.Description {
		list.Description = args.Description
		changed = true
	}
	if list.Visibility != args.Visibility {
		list.Visibility = args.Visibility
		changed = true
	}
	if list.SourceTagID == nil || *list.SourceTagID != args.Tag.ID {
		tagID := args.Tag.ID
		list.SourceTagID = &tagID
		changed = true
	}
	if !list.IsDynamic {
		list.IsDynamic = true
		changed = true
	}
	if changed {
		_, err = tx.Exec(ctx,
			`UPDATE media_lists
			 SET title = $2, description = $3, visibility = $4, source_tag_id = $5, is_dynamic = $6, updated_at = NOW()
			 WHERE id = $1`,
			list.ID, list.Title, list.Description, list.Visibility, list.SourceTagID, list.IsDynamic)
		if err != nil {
			return nil, fmt.Errorf("update list %q: %w", slug, err)
		}
	}
	return list, nil
}

func listMembershipTx(ctx context.Context, tx pgx.Tx, listID int64) ([]models.MediaListItem, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, list_id, item_id, position FROM media_list_items WHERE list_id = $1`, listID)
	if err != nil {
		return nil, fmt.Errorf("list membership: %w", err)
	}
	defer rows.Close()

	var current []models.MediaListItem
	for rows.Next() {
		var row models.MediaListItem
		if err := rows.Scan(&row.ID, &row.ListID, &row.ItemID, &row.Position); err != nil {
			return nil, fmt.Errorf("list membership scan: %w", err)
		}
		current = append(current, row)
	}
	return current, rows.Err()
}

// applyPlanTx executes the membership diff. Position updates touch only the
// position column so annotation fields set by other collaborators survive.
func applyPlanTx(ctx context.Context, tx pgx.Tx, listID int64, plan ReconcilePlan) error {
	if len(plan.Deletes) > 0 {
		_, err := tx.Exec(ctx, `DELETE FROM media_list_items WHERE id = ANY($1)`, plan.Deletes)
		if err != nil {
			return fmt.Errorf("delete stale list items: %w", err)
		}
	}
	for _, move := range plan.Moves {
		_, err := tx.Exec(ctx,
			`UPDATE media_list_items SET position = $2 WHERE id = $1`, move.RowID, move.Position)
		if err != nil {
			return fmt.Errorf("move list item: %w", err)
		}
	}
	for _, create := range plan.Creates {
		_, err := tx.Exec(ctx,
			`INSERT INTO media_list_items (list_id, item_id, position) VALUES ($1, $2, $3)`,
			listID, create.ItemID, create.Position)
		if err != nil {
			return fmt.Errorf("insert list item: %w", err)
		}
	}
	return nil
}

// GetListBySlug returns a list by slug, or ErrNotFound.
func (p *Postgres) GetListBySlug(ctx context.Context, slug string) (*models.MediaList, error) {
	list, err := scanList(p.pool.QueryRow(ctx,
		`SELECT `+listColumns+` FROM media_lists WHERE slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("list %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetListBySlug: %w", err)
	}
	return list, nil
}

// ListMediaLists returns lists, newest first, optionally filtered by owner.
func (p *Postgres) ListMediaLists(ctx context.Context, ownerID *int64) ([]models.MediaList, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+listColumns+` FROM media_lists
		 WHERE $1::bigint IS NULL OR owner_id = $1
		 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListMediaLists: %w", err)
	}
	defer rows.Close()

	var lists []models.MediaList
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("ListMediaLists scan: %w", err)
		}
		lists = append(lists, *list)
	}
	return lists, rows.Err()
}

// ListEntries returns a list's membership rows joined with their media
// items, ordered by position.
func (p *Postgres) ListEntries(ctx context.Context, listID int64) ([]ListEntry, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT li.id, li.list_id, li.item_id, li.position, li.notes, li.added_by, li.created_at,
		        mi.id, mi.tmdb_id, mi.media_type, mi.title, mi.original_title, mi.release_date,
		        mi.poster_url, mi.backdrop_url, mi.overview, mi.metadata, mi.created_at, mi.updated_at
		 FROM media_list_items li
		 JOIN media_items mi ON mi.id = li.item_id
		 WHERE li.list_id = $1
		 ORDER BY li.position`, listID)
	if err != nil {
		return nil, fmt.Errorf("ListEntries: %w", err)
	}
	defer rows.Close()

	var entries []ListEntry
	for rows.Next() {
		var e ListEntry
		err := rows.Scan(&e.ID, &e.ListID, &e.ItemID, &e.Position, &e.Notes, &e.AddedBy, &e.CreatedAt,
			&e.Item.ID, &e.Item.TMDBID, &e.Item.MediaType, &e.Item.Title, &e.Item.OriginalTitle,
			&e.Item.ReleaseDate, &e.Item.PosterURL, &e.Item.BackdropURL, &e.Item.Overview,
			&e.Item.Metadata, &e.Item.CreatedAt, &e.Item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("ListEntries scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetMediaItemByTMDBID returns a media item by provider id, or ErrNotFound.
func (p *Postgres) GetMediaItemByTMDBID(ctx context.Context, tmdbID int64) (*models.MediaItem, error) {
	var item models.MediaItem
	err := p.pool.QueryRow(ctx,
		`SELECT id, tmdb_id, media_type, title, original_title, release_date,
		        poster_url, backdrop_url, overview, metadata, created_at, updated_at
		 FROM media_items WHERE tmdb_id = $1`, tmdbID).
		Scan(&item.ID, &item.TMDBID, &item.MediaType, &item.Title, &item.OriginalTitle,
			&item.ReleaseDate, &item.PosterURL, &item.BackdropURL, &item.Overview,
			&item.Metadata, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("media item %d: %w", tmdbID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetMediaItemByTMDBID: %w", err)
	}
	return &item, nil
}
