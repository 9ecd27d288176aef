package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/marqueehq/marquee/internal/keywords"
)

// DefaultAppend lists the auxiliary sections fetched alongside every movie
// detail so enrichment stays a single call per title.
const DefaultAppend = "credits,external_ids,keywords,release_dates,watch/providers,similar,recommendations"

// sortPopularity biases discovery toward well-known titles. A UX policy,
// not a correctness requirement.
const sortPopularity = "popularity.desc"

// ResolveKeyword resolves a human-readable keyword name into a TMDB keyword
// id via text search. An exact case-insensitive name match wins; otherwise
// the first result is accepted as a best-effort match. A miss is reported
// as a NotFoundError.
func (c *Client) ResolveKeyword(ctx context.Context, name string) (int64, error) {
	page, err := c.SearchKeyword(ctx, name, 1)
	if err != nil {
		return 0, err
	}
	if len(page.Results) == 0 {
		return 0, &NotFoundError{Query: name}
	}

	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, match := range page.Results {
		if strings.ToLower(match.Name) == lowered {
			return match.ID, nil
		}
	}
	return page.Results[0].ID, nil
}

// DiscoverOptions tune one discovery run.
type DiscoverOptions struct {
	Limit        int
	IncludeAdult bool
	Language     string
}

// DiscoverByKeywords pages through the discover endpoint for any of the
// given keyword ids until opts.Limit distinct titles are collected or pages
// run out. Duplicate ids across pages are skipped. Zero collected titles is
// reported as a NotFoundError carrying the attempted filter.
func (c *Client) DiscoverByKeywords(ctx context.Context, keywordIDs []int64, opts DiscoverOptions) ([]MovieSummary, error) {
	filter := keywords.Filter(keywordIDs)
	if filter == "" {
		return nil, fmt.Errorf("at least one keyword id is required")
	}

	collected := make([]MovieSummary, 0, opts.Limit)
	seen := make(map[int64]struct{}, opts.Limit)
	page := 1

	for len(collected) < opts.Limit {
		resp, err := c.DiscoverMovies(ctx, DiscoverParams{
			WithKeywords: filter,
			Page:         page,
			IncludeAdult: opts.IncludeAdult,
			SortBy:       sortPopularity,
			Language:     opts.Language,
		})
		if err != nil {
			return nil, fmt.Errorf("discover page %d: %w", page, err)
		}

		for _, result := range resp.Results {
			if result.ID == 0 {
				continue
			}
			if _, dup := seen[result.ID]; dup {
				continue
			}
			seen[result.ID] = struct{}{}
			collected = append(collected, result)
			if len(collected) >= opts.Limit {
				break
			}
		}

		if page >= resp.TotalPages || len(resp.Results) == 0 {
			break
		}
		page++
	}

	if len(collected) == 0 {
		return nil, &NotFoundError{Filter: filter}
	}
	return collected, nil
}

// FetchDetails retrieves the full detail payload for each id, requesting
// the appended sections in the same call. Any failure aborts the whole
// fetch; the engine never partially enriches.
func (c *Client) FetchDetails(ctx context.Context, ids []int64, language, appendToResponse string) (map[int64]*MovieDetail, error) {
	details := make(map[int64]*MovieDetail, len(ids))
	for _, id := range ids {
		detail, err := c.MovieDetails(ctx, id, language, appendToResponse)
		if err != nil {
			return nil, fmt.Errorf("movie %d details: %w", id, err)
		}
		details[id] = detail
	}
	return details, nil
}
