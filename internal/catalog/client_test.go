package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", ClientOptions{BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", ClientOptions{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			})

			_, err := client.SearchKeyword(context.Background(), "queer", 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenericServerErrorIsNotTaxonomized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.SearchKeyword(context.Background(), "queer", 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrRateLimited)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestSearchKeyword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/keyword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		assert.Equal(t, "Transidentités", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"results":[{"id":99,"name":"Transidentités"}],"total_pages":1}`))
	})

	page, err := client.SearchKeyword(context.Background(), "Transidentités", 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(99), page.Results[0].ID)
	assert.Equal(t, "Transidentités", page.Results[0].Name)
}

func TestSearchKeywordRejectsEmptyQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := client.SearchKeyword(context.Background(), "", 1)
	assert.Error(t, err)
}

func TestMovieDetailsCapturesRawPayload(t *testing.T) {
	body := `{"id":42,"title":"Pride","original_title":"Pride","release_date":"2014-09-12",` +
		`"credits":{"cast":[{"name":"Ben Schnetzer"}],"crew":[{"name":"Matthew Warchus","job":"Director"}]},` +
		`"external_ids":{"imdb_id":"tt3169706"}}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/42", r.URL.Path)
		assert.Equal(t, "credits,external_ids", r.URL.Query().Get("append_to_response"))
		w.Write([]byte(body))
	})

	detail, err := client.MovieDetails(context.Background(), 42, "", "credits,external_ids")
	require.NoError(t, err)
	assert.Equal(t, int64(42), detail.ID)
	assert.Equal(t, "Pride", detail.Title)
	require.NotNil(t, detail.Credits)
	assert.Equal(t, "Matthew Warchus", detail.Credits.Crew[0].Name)
	assert.JSONEq(t, body, string(detail.Raw))
}

func TestDiscoverMoviesParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "1|2", q.Get("with_keywords"))
		assert.Equal(t, "true", q.Get("include_adult"))
		assert.Equal(t, "popularity.desc", q.Get("sort_by"))
		assert.Equal(t, "fr-FR", q.Get("language"))
		w.Write([]byte(`{"page":1,"results":[],"total_pages":0,"total_results":0}`))
	})

	_, err := client.DiscoverMovies(context.Background(), DiscoverParams{
		WithKeywords: "1|2",
		IncludeAdult: true,
		SortBy:       "popularity.desc",
		Language:     "fr-FR",
	})
	require.NoError(t, err)
}
