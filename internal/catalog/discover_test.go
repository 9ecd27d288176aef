package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKeywordPrefersExactMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[
			{"id":10,"name":"queer cinema"},
			{"id":11,"name":"Queer"},
			{"id":12,"name":"queerness"}
		],"total_pages":1}`))
	})

	id, err := client.ResolveKeyword(context.Background(), "queer")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestResolveKeywordFallsBackToFirstResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[
			{"id":99,"name":"transidentité (2010s)"},
			{"id":100,"name":"transition"}
		],"total_pages":1}`))
	})

	id, err := client.ResolveKeyword(context.Background(), "Transidentités")
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
}

func TestResolveKeywordNoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[],"total_pages":0}`))
	})

	_, err := client.ResolveKeyword(context.Background(), "zzzz")
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "zzzz", nf.Query)
}

// discoverHandler serves canned pages and records which page numbers
// were actually requested.
func discoverHandler(t *testing.T, pages map[string]string, requested *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		*requested = append(*requested, page)
		body, ok := pages[page]
		if !ok {
			t.Fatalf("unexpected page request: %s", page)
		}
		w.Write([]byte(body))
	}
}

func TestDiscoverByKeywordsDeduplicatesAcrossPages(t *testing.T) {
	var requested []string
	pages := map[string]string{
		"1": `{"page":1,"results":[{"id":1,"title":"One"},{"id":2,"title":"Two"}],"total_pages":3,"total_results":5}`,
		"2": `{"page":2,"results":[{"id":2,"title":"Two"},{"id":3,"title":"Three"}],"total_pages":3,"total_results":5}`,
		"3": `{"page":3,"results":[{"id":4,"title":"Four"}],"total_pages":3,"total_results":5}`,
	}
	client := newTestClient(t, discoverHandler(t, pages, &requested))

	results, err := client.DiscoverByKeywords(context.Background(), []int64{7}, DiscoverOptions{Limit: 3})
	require.NoError(t, err)

	ids := make([]int64, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
	// the limit is satisfied on page 2, so page 3 is never fetched
	assert.Equal(t, []string{"1", "2"}, requested)
}

func TestDiscoverByKeywordsStopsOnLastPage(t *testing.T) {
	var requested []string
	pages := map[string]string{
		"1": `{"page":1,"results":[{"id":1,"title":"One"}],"total_pages":2,"total_results":2}`,
		"2": `{"page":2,"results":[{"id":2,"title":"Two"}],"total_pages":2,"total_results":2}`,
	}
	client := newTestClient(t, discoverHandler(t, pages, &requested))

	results, err := client.DiscoverByKeywords(context.Background(), []int64{7}, DiscoverOptions{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"1", "2"}, requested)
}

func TestDiscoverByKeywordsEmptyCatalog(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[],"total_pages":0,"total_results":0}`))
	})

	_, err := client.DiscoverByKeywords(context.Background(), []int64{7, 8}, DiscoverOptions{Limit: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "7|8", nf.Filter)
}

func TestDiscoverByKeywordsRequiresKeywords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := client.DiscoverByKeywords(context.Background(), nil, DiscoverOptions{Limit: 10})
	assert.Error(t, err)
}

func TestFetchDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/movie/")
		w.Write([]byte(fmt.Sprintf(`{"id":%s,"title":"Movie %s"}`, id, id)))
	})

	details, err := client.FetchDetails(context.Background(), []int64{5, 6}, "", DefaultAppend)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Movie 5", details[5].Title)
	assert.Equal(t, "Movie 6", details[6].Title)
}

func TestFetchDetailsAbortsOnFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/6") {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id":5,"title":"Movie 5"}`))
	})

	_, err := client.FetchDetails(context.Background(), []int64{5, 6}, "", "")
	assert.ErrorIs(t, err, ErrRateLimited)
}
