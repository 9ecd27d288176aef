package catalog

import "encoding/json"

// MovieSummary is one entry of a discover page. Raw keeps the verbatim
// provider JSON so it can be retained in the stored metadata blob.
type MovieSummary struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	Overview      string `json:"overview"`
	ReleaseDate   string `json:"release_date"`
	PosterPath    string `json:"poster_path"`
	BackdropPath  string `json:"backdrop_path"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and captures the raw payload.
func (m *MovieSummary) UnmarshalJSON(data []byte) error {
	type plain MovieSummary
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = MovieSummary(p)
	m.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// CreditEntry is one cast or crew member from the credits section.
type CreditEntry struct {
	Name       string `json:"name"`
	Job        string `json:"job,omitempty"`
	Department string `json:"department,omitempty"`
}

// Credits is the credits section appended to a detail response.
type Credits struct {
	Cast []CreditEntry `json:"cast"`
	Crew []CreditEntry `json:"crew"`
}

// MovieDetail is the full detail payload for one movie, including whatever
// appended sections were requested. Raw keeps the verbatim provider JSON.
type MovieDetail struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	Overview      string   `json:"overview"`
	ReleaseDate   string   `json:"release_date"`
	PosterPath    string   `json:"poster_path"`
	BackdropPath  string   `json:"backdrop_path"`
	Credits       *Credits `json:"credits"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and captures the raw payload.
func (d *MovieDetail) UnmarshalJSON(data []byte) error {
	type plain MovieDetail
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = MovieDetail(p)
	d.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// KeywordMatch is one result of a keyword text search.
type KeywordMatch struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// KeywordPage is one page of keyword search results.
type KeywordPage struct {
	Page       int            `json:"page"`
	Results    []KeywordMatch `json:"results"`
	TotalPages int            `json:"total_pages"`
}

// DiscoverPage is one page returned by the discover endpoint.
type DiscoverPage struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}
