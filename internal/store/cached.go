package store

import (
	"context"
	"fmt"
	"time"

	"github.com/marqueehq/marquee/internal/cache"
	"github.com/marqueehq/marquee/internal/logger"
	"github.com/marqueehq/marquee/internal/models"
)

// Cache TTLs for different entity types. The read surface is what
// presentation consumers hit repeatedly; reconciliation invalidates it.
const (
	ttlTags    = 5 * time.Minute
	ttlTag     = 5 * time.Minute
	ttlLists   = 2 * time.Minute
	ttlList    = 5 * time.Minute
	ttlEntries = 2 * time.Minute
	ttlItem    = 5 * time.Minute
)

// CachedStore wraps a Store with a Redis caching layer. Read operations are
// served from cache when possible; writes invalidate the relevant keys.
type CachedStore struct {
	inner Store
	cache *cache.Redis
	log   *logger.Logger
}

// NewCachedStore creates a CachedStore that wraps inner with Redis caching.
func NewCachedStore(inner Store, c *cache.Redis, log *logger.Logger) *CachedStore {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedStore{inner: inner, cache: c, log: log}
}

// --- cached read operations ---

func (c *CachedStore) ListTags(ctx context.Context) ([]models.IdentityTag, error) {
	const key = "tags:all"
	if v, err := cache.Get[[]models.IdentityTag](ctx, c.cache, key); err == nil {
		return v, nil
	}
	tags, err := c.inner.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, c.cache, key, tags, ttlTags); err != nil {
		c.log.Warn("cache set failed", "key", key, "err", err)
	}
	return tags, nil
}

func (c *CachedStore) GetTagBySlug(ctx context.Context, slug string) (*models.IdentityTag, error) {
	key := "tag:" + slug
	if v, err := cache.Get[models.IdentityTag](ctx, c.cache, key); err == nil {
		return &v, nil
	}
	tag, err := c.inner.GetTagBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, c.cache, key, tag, ttlTag); err != nil {
		c.log.Warn("cache set failed", "key", key, "err", err)
	}
	return tag, nil
}

func (c *CachedStore) GetListBySlug(ctx context.Context, slug string) (*models.MediaList, error) {
	key := "list:" + slug
	if v, err := cache.Get[models.MediaList](ctx, c.cache, key); err == nil {
		return &v, nil
	}
	list, err := c.inner.GetListBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, c.cache, key, list, ttlList); err != nil {
		c.log.Warn("cache set failed", "key", key, "err", err)
	}
	return list, nil
}

func (c *CachedStore) ListMediaLists(ctx context.Context, ownerID *int64) ([]models.MediaList, error) {
	owner := "all"
	if ownerID != nil {
		owner = fmt.Sprintf("%d", *ownerID)
	}
	key := "lists:" + owner
	if v, err := cache.Get[[]models.MediaList](ctx, c.cache, key); err == nil {
		return v, nil
	}
	lists, err := c.inner.ListMediaLists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, c.cache, key, lists, ttlLists); err != nil {
		c.log.Warn("cache set failed", "key", key, "err", err)
	}
	return lists, nil
}

func (c *CachedStore) ListEntries(ctx context.Context, listID int64) ([]ListEntry, error) {
	key := fmt.Sprintf("entries:%d", listID)
	if v, err := cache.Get[[]ListEntry](ctx, c.cache, key); err == nil {
		return v, nil
	}
	entries, err := c.inner.ListEntries(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, c.cache, key, entries, ttlEntries); err != nil {
		c.log.Warn("cache set failed", "key", key, "err", err)
	}
	return entries, nil
}

func (c *CachedStore) GetMediaItemByTMDBID(ctx context.Context, tmdbID int64) (*models.MediaItem, error) {
	key := fmt.Sprintf("item:%d", tmdbID)
	if v, err := cache.Get[models.MediaItem](ctx, c.cache, key); err == nil {
		return &v, nil
	}
	item, err := c.inner.GetMediaItemByTMDBID(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, c.cache, key, item, ttlItem); err != nil {
		c.log.Warn("cache set failed", "key", key, "err", err)
	}
	return item, nil
}

// --- write operations with cache invalidation ---

func (c *CachedStore) SetTagKeywordID(ctx context.Context, tagID, keywordID int64) error {
	if err := c.inner.SetTagKeywordID(ctx, tagID, keywordID); err != nil {
		return err
	}
	c.invalidatePattern(ctx, "tag:*", "tags:*")
	return nil
}

func (c *CachedStore) ReconcileList(ctx context.Context, args ReconcileArgs) (*models.MediaList, error) {
	list, err := c.inner.ReconcileList(ctx, args)
	if err != nil {
		return nil, err
	}
	// Reconciliation can rewrite items, membership, and the list row itself.
	c.invalidate(ctx, "list:"+list.Slug, fmt.Sprintf("entries:%d", list.ID))
	c.invalidatePattern(ctx, "lists:*", "item:*")
	return list, nil
}

// --- helpers ---

// invalidate deletes exact cache keys, logging any errors.
func (c *CachedStore) invalidate(ctx context.Context, keys ...string) {
	if err := cache.Del(ctx, c.cache, keys...); err != nil {
		c.log.Warn("cache del failed", "keys", keys, "err", err)
	}
}

// invalidatePattern deletes all keys matching the given glob patterns.
func (c *CachedStore) invalidatePattern(ctx context.Context, patterns ...string) {
	for _, p := range patterns {
		if err := cache.DelPattern(ctx, c.cache, p); err != nil {
			c.log.Warn("cache del pattern failed", "pattern", p, "err", err)
		}
	}
}
