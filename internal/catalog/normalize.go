package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/marqueehq/marquee/internal/models"
)

// Image base URLs per kind. Posters use the w500 width class, backdrops w780.
const (
	posterBaseURL   = "https://image.tmdb.org/t/p/w500"
	backdropBaseURL = "https://image.tmdb.org/t/p/w780"
)

// Movie is the canonical normalized record coalesced from a discover
// summary and a detail payload. Metadata retains both raw payloads verbatim
// for downstream presentation consumers.
type Movie struct {
	TMDBID        int64
	MediaType     string
	Title         string
	OriginalTitle string
	Overview      string
	ReleaseDate   *time.Time
	PosterURL     string
	BackdropURL   string
	Directors     []string
	TopCast       []string
	Metadata      json.RawMessage
}

// movieMetadata is the shape of the stored metadata blob.
type movieMetadata struct {
	Summary   json.RawMessage `json:"summary"`
	Details   json.RawMessage `json:"details"`
	Directors []string        `json:"directors,omitempty"`
	Cast      []string        `json:"cast,omitempty"`
}

// Normalize merges a summary and a detail payload into a canonical Movie.
// Detail fields take precedence; summary fields fill the gaps. It returns
// nil when the pair is unusable (no id, or no title after trimming).
func Normalize(summary *MovieSummary, detail *MovieDetail) *Movie {
	if summary == nil {
		summary = &MovieSummary{}
	}
	if detail == nil {
		detail = &MovieDetail{}
	}

	id := detail.ID
	if id == 0 {
		id = summary.ID
	}
	if id == 0 {
		return nil
	}

	title := strings.TrimSpace(coalesce(detail.Title, summary.Title))
	if title == "" {
		return nil
	}

	originalTitle := coalesce(detail.OriginalTitle, summary.OriginalTitle)
	if originalTitle == title {
		originalTitle = ""
	}

	overview := strings.TrimSpace(coalesce(detail.Overview, summary.Overview))

	var releaseDate *time.Time
	if raw := coalesce(detail.ReleaseDate, summary.ReleaseDate); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			releaseDate = &parsed
		}
	}

	directors, topCast := extractCredits(detail.Credits)

	meta, _ := json.Marshal(movieMetadata{
		Summary:   rawOrEmpty(summary.Raw),
		Details:   rawOrEmpty(detail.Raw),
		Directors: directors,
		Cast:      topCast,
	})

	return &Movie{
		TMDBID:        id,
		MediaType:     models.MediaTypeMovie,
		Title:         title,
		OriginalTitle: originalTitle,
		Overview:      overview,
		ReleaseDate:   releaseDate,
		PosterURL:     imageURL(coalesce(detail.PosterPath, summary.PosterPath), posterBaseURL),
		BackdropURL:   imageURL(coalesce(detail.BackdropPath, summary.BackdropPath), backdropBaseURL),
		Directors:     directors,
		TopCast:       topCast,
		Metadata:      meta,
	}
}

// extractCredits pulls directors and the top-billed cast out of a credits
// section. Directors are crew entries with the job "Director", falling back
// to the Directing department when none exist; names are deduplicated
// preserving first-seen order. Top cast is the first four non-empty names.
func extractCredits(credits *Credits) (directors, topCast []string) {
	if credits == nil {
		return nil, nil
	}

	for _, member := range credits.Crew {
		if member.Job == "Director" && member.Name != "" {
			directors = append(directors, member.Name)
		}
	}
	if len(directors) == 0 {
		for _, member := range credits.Crew {
			if member.Department == "Directing" && member.Name != "" {
				directors = append(directors, member.Name)
			}
		}
	}
	directors = dedupe(directors)

	cast := credits.Cast
	if len(cast) > 4 {
		cast = cast[:4]
	}
	for _, person := range cast {
		if person.Name != "" {
			topCast = append(topCast, person.Name)
		}
	}
	topCast = dedupe(topCast)
	return directors, topCast
}

func coalesce(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

func imageURL(path, base string) string {
	if path == "" {
		return ""
	}
	return base + path
}

func rawOrEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("{}")
	}
	return raw
}

func dedupe(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
