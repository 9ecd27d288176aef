// Package keywords holds the curated mapping from identity tag slugs to
// TMDB keyword ids. The table was assembled from prior discovery
// experiments and covers the well-known themes without any network calls.
package keywords

import (
	"strconv"
	"strings"
)

// MaxFilterTerms is the number of keyword ids TMDB accepts in one
// pipe-joined with_keywords expression.
const MaxFilterTerms = 5

// themes maps a tag slug to its related TMDB keyword ids, richest first.
// The first id is the primary keyword for the theme.
var themes = map[string][]int64{
	"trans-joy": {
		265451, 343076, 254152, 268076, 335948,
		274776, 14702, 290527, 325300, 317540,
		328899, 307399, 217271, 189962, 312909,
	},
	"lesbian-love": {
		264386, 308586, 315385, 319872, 9833,
		15136, 305694, 328765, 345079, 308587,
		290382, 272066,
	},
	"gay-celebration": {
		258533, 10180, 275157, 173672, 264411,
		241179, 259285, 326218, 293495, 267923,
		272617, 239239, 250937, 157096,
	},
	"queer-joy": {
		250606, 321567, 333327, 333766, 332049,
		312912, 300642, 346116, 304694, 207958,
		314127, 265587, 347179,
	},
	"lgbt-history": {
		158718, 346871, 348563, 275749, 313433,
		280179, 156501, 267488, 271115, 271167,
		325395, 253337, 236454,
	},
	"non-binary": {
		252909, 266529, 281283, 210039, 34221,
		312910, 34214, 234700, 11402,
	},
	"gender-studies": {
		246413, 34214, 210039, 234700, 34221,
		273188, 299718, 11402,
	},
	"radical-feminism": {
		309966, 2383, 11718, 301659, 293179,
		228965, 6337, 338884, 161166, 208591,
		221195, 296536,
	},
	"intersex": {
		240109, 257264, 9331, 273188,
	},
	"asexual": {
		329977, 247099, 329976, 322171,
	},
	"tds-sex-work": {
		271159, 13059, 245541, 226543, 190178,
		163791, 279793, 254724,
	},
	"bisexual": {
		329968, 168812, 287417, 3183,
	},
	"pansexual": {
		262765, 155870,
	},
	"bipoc-lgbtq": {
		316515, 195624, 272309, 291081, 233840,
		11550, 257456, 10144,
	},
}

// ForTheme returns the curated TMDB keyword ids for a tag slug, richest
// first. The returned slice is a copy; nil means the slug has no curated
// mapping.
func ForTheme(slug string) []int64 {
	ids, ok := themes[slug]
	if !ok {
		return nil
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

// Primary returns the primary keyword id for a tag slug.
func Primary(slug string) (int64, bool) {
	ids := themes[slug]
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// Filter builds the pipe-joined with_keywords expression TMDB expects,
// keeping at most MaxFilterTerms ids.
func Filter(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	if len(ids) > MaxFilterTerms {
		ids = ids[:MaxFilterTerms]
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, "|")
}
