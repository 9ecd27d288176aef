package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueehq/marquee/internal/models"
)

// unmarshalSummary builds a MovieSummary the way the client would, so the
// Raw payload is populated.
func unmarshalSummary(t *testing.T, body string) *MovieSummary {
	t.Helper()
	var s MovieSummary
	require.NoError(t, json.Unmarshal([]byte(body), &s))
	return &s
}

func unmarshalDetail(t *testing.T, body string) *MovieDetail {
	t.Helper()
	var d MovieDetail
	require.NoError(t, json.Unmarshal([]byte(body), &d))
	return &d
}

func TestNormalizeDetailTakesPrecedence(t *testing.T) {
	summary := unmarshalSummary(t, `{"id":7,"title":"A","overview":"short","poster_path":"/s.jpg"}`)
	detail := unmarshalDetail(t, `{"id":7,"title":"B","overview":"long","poster_path":"/d.jpg"}`)

	movie := Normalize(summary, detail)
	require.NotNil(t, movie)
	assert.Equal(t, int64(7), movie.TMDBID)
	assert.Equal(t, models.MediaTypeMovie, movie.MediaType)
	assert.Equal(t, "B", movie.Title)
	assert.Equal(t, "long", movie.Overview)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/d.jpg", movie.PosterURL)
}

func TestNormalizeSummaryFillsGaps(t *testing.T) {
	summary := unmarshalSummary(t, `{"id":7,"title":"A","overview":"short","backdrop_path":"/b.jpg"}`)
	detail := unmarshalDetail(t, `{"id":7}`)

	movie := Normalize(summary, detail)
	require.NotNil(t, movie)
	assert.Equal(t, "A", movie.Title)
	assert.Equal(t, "short", movie.Overview)
	assert.Equal(t, "https://image.tmdb.org/t/p/w780/b.jpg", movie.BackdropURL)
	assert.Empty(t, movie.PosterURL)
}

func TestNormalizeDiscardsUnusableRecords(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		detail  string
	}{
		{"no id", `{"title":"A"}`, `{"title":"B"}`},
		{"no title", `{"id":7}`, `{"id":7}`},
		{"whitespace title", `{"id":7,"title":"   "}`, `{"id":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movie := Normalize(unmarshalSummary(t, tt.summary), unmarshalDetail(t, tt.detail))
			assert.Nil(t, movie)
		})
	}
}

func TestNormalizeHandlesNilInputs(t *testing.T) {
	assert.Nil(t, Normalize(nil, nil))

	movie := Normalize(unmarshalSummary(t, `{"id":7,"title":"A"}`), nil)
	require.NotNil(t, movie)
	assert.Equal(t, "A", movie.Title)
}

func TestNormalizeReleaseDate(t *testing.T) {
	movie := Normalize(unmarshalSummary(t, `{"id":7,"title":"A","release_date":"2014-09-12"}`), nil)
	require.NotNil(t, movie)
	require.NotNil(t, movie.ReleaseDate)
	assert.Equal(t, "2014-09-12", movie.ReleaseDate.Format("2006-01-02"))

	movie = Normalize(unmarshalSummary(t, `{"id":7,"title":"A","release_date":"not-a-date"}`), nil)
	require.NotNil(t, movie)
	assert.Nil(t, movie.ReleaseDate)

	movie = Normalize(unmarshalSummary(t, `{"id":7,"title":"A","release_date":""}`), nil)
	require.NotNil(t, movie)
	assert.Nil(t, movie.ReleaseDate)
}

func TestNormalizeSuppressesRedundantOriginalTitle(t *testing.T) {
	movie := Normalize(unmarshalSummary(t, `{"id":7,"title":"Pride","original_title":"Pride"}`), nil)
	require.NotNil(t, movie)
	assert.Empty(t, movie.OriginalTitle)

	movie = Normalize(unmarshalSummary(t, `{"id":7,"title":"120 BPM","original_title":"120 battements par minute"}`), nil)
	require.NotNil(t, movie)
	assert.Equal(t, "120 battements par minute", movie.OriginalTitle)
}

func TestNormalizeExtractsCredits(t *testing.T) {
	detail := unmarshalDetail(t, `{"id":7,"title":"A","credits":{
		"cast":[{"name":"One"},{"name":""},{"name":"Three"},{"name":"Four"},{"name":"Five"}],
		"crew":[
			{"name":"Dir A","job":"Director","department":"Directing"},
			{"name":"Dir A","job":"Director","department":"Directing"},
			{"name":"Editor","job":"Editor","department":"Editing"}
		]}}`)

	movie := Normalize(nil, detail)
	require.NotNil(t, movie)
	assert.Equal(t, []string{"Dir A"}, movie.Directors)
	// the top-cast window is the first four billed entries, empties dropped
	assert.Equal(t, []string{"One", "Three", "Four"}, movie.TopCast)
}

func TestNormalizeDirectorDepartmentFallback(t *testing.T) {
	detail := unmarshalDetail(t, `{"id":7,"title":"A","credits":{
		"crew":[{"name":"Dir B","job":"Co-Director","department":"Directing"}]}}`)

	movie := Normalize(nil, detail)
	require.NotNil(t, movie)
	assert.Equal(t, []string{"Dir B"}, movie.Directors)
}

func TestNormalizeMetadataRetainsRawPayloads(t *testing.T) {
	summaryBody := `{"id":7,"title":"A","popularity":12.5}`
	detailBody := `{"id":7,"title":"B","budget":1000,"credits":{"cast":[{"name":"One"}],"crew":[]}}`
	movie := Normalize(unmarshalSummary(t, summaryBody), unmarshalDetail(t, detailBody))
	require.NotNil(t, movie)

	var meta struct {
		Summary   json.RawMessage `json:"summary"`
		Details   json.RawMessage `json:"details"`
		Directors []string        `json:"directors"`
		Cast      []string        `json:"cast"`
	}
	require.NoError(t, json.Unmarshal(movie.Metadata, &meta))
	assert.JSONEq(t, summaryBody, string(meta.Summary))
	assert.JSONEq(t, detailBody, string(meta.Details))
	assert.Equal(t, []string{"One"}, meta.Cast)
}
