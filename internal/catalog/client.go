// Package catalog is a typed client for the TMDB HTTP API plus the
// discovery, enrichment, and normalization helpers built on top of it.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/marqueehq/marquee/internal/logger"
)

const (
	// DefaultBaseURL is the TMDB v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage is applied to every call unless overridden.
	DefaultLanguage = "en-US"

	defaultHTTPTimeout = 10 * time.Second
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = errors.New("tmdb API key must be provided")

// Client issues authenticated calls against the TMDB API. It is safe for
// reuse across calls; the underlying http.Client applies a bounded timeout
// to every request.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	http     *http.Client
	log      *logger.Logger
}

// ClientOptions tune a Client. Zero values select the defaults.
type ClientOptions struct {
	BaseURL  string
	Language string
	Timeout  time.Duration
	Logger   *logger.Logger
}

// NewClient builds a TMDB client. The API key is required.
func NewClient(apiKey string, opts ClientOptions) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultHTTPTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Client{
		apiKey:   apiKey,
		baseURL:  opts.BaseURL,
		language: opts.Language,
		http:     &http.Client{Timeout: opts.Timeout},
		log:      opts.Logger,
	}, nil
}

// get performs an authenticated GET against path, decoding the JSON
// response into out. The API key and default language are injected into
// every call; params may override the language.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)
	for k, vs := range params {
		for _, v := range vs {
			query.Set(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("NewRequest: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Status: resp.StatusCode, Err: ErrUnauthorized}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Status: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &Error{Status: resp.StatusCode, Err: ErrRateLimited}
	case resp.StatusCode >= 400:
		return &Error{Status: resp.StatusCode, Body: string(body)}
	}

	c.log.Debug("tmdb request", "path", path, "status", resp.StatusCode)

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// SearchKeyword searches TMDB keywords by text (e.g. "Queer", "Trans").
func (c *Client) SearchKeyword(ctx context.Context, query string, page int) (*KeywordPage, error) {
	if query == "" {
		return nil, errors.New("keyword query must not be empty")
	}
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var out KeywordPage
	if err := c.get(ctx, "/search/keyword", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiscoverParams are the filters for one discover call.
type DiscoverParams struct {
	WithKeywords string // pipe-joined keyword ids
	Page         int
	IncludeAdult bool
	SortBy       string // e.g. "popularity.desc"
	Language     string // overrides the client default when set
}

// DiscoverMovies calls the discover endpoint with the given filters.
func (c *Client) DiscoverMovies(ctx context.Context, p DiscoverParams) (*DiscoverPage, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	params := url.Values{}
	if p.WithKeywords != "" {
		params.Set("with_keywords", p.WithKeywords)
	}
	params.Set("page", strconv.Itoa(p.Page))
	params.Set("include_adult", strconv.FormatBool(p.IncludeAdult))
	if p.SortBy != "" {
		params.Set("sort_by", p.SortBy)
	}
	if p.Language != "" {
		params.Set("language", p.Language)
	}

	var out DiscoverPage
	if err := c.get(ctx, "/discover/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieDetails retrieves the full detail payload for one movie.
// appendToResponse is a comma separated list of extra sections to compose
// into the same response (e.g. "credits,external_ids").
func (c *Client) MovieDetails(ctx context.Context, id int64, language, appendToResponse string) (*MovieDetail, error) {
	if id == 0 {
		return nil, errors.New("movie id must be provided")
	}
	params := url.Values{}
	if language != "" {
		params.Set("language", language)
	}
	if appendToResponse != "" {
		params.Set("append_to_response", appendToResponse)
	}

	var out MovieDetail
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Configuration fetches the TMDB API configuration (image base URLs etc.).
func (c *Client) Configuration(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.get(ctx, "/configuration", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
