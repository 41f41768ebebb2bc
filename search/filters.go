package search

import (
	"sort"
	"strings"

	"github.com/poiesic/librosearch/core"
)

// applyTypeFilter zeroes out the tiers that do not match the requested
// publication type. Filters never change tier membership, only which
// tiers survive. The mention tier is always cleared when any type filter
// is set: a mention is neither a monograph nor a collective nor an
// authored work.
func applyTypeFilter(set *core.ResultSet, t core.PublicationType) {
	if t == "" {
		return
	}
	if t != core.PubMonograph {
		set.MonographsTitled = nil
		set.Monographs = nil
	}
	if t != core.PubCollective {
		set.Collectives = nil
	}
	if t != core.PubAuthor {
		set.AsAuthor = nil
	}
	set.Mentions = nil
}

// languageFold maps the catalog's free-text language spellings onto the
// canonical facet codes. Anything unrecognized keeps its raw form.
var languageFold = map[string]string{
	"it": "IT", "ita": "IT", "itl": "IT", "italiano": "IT", "italian": "IT",
	"en": "EN", "eng": "EN", "inglese": "EN", "english": "EN", "ing": "EN",
	"de": "DE", "deu": "DE", "ger": "DE", "tedesco": "DE", "german": "DE",
	"fr": "FR", "fra": "FR", "fre": "FR", "francese": "FR", "french": "FR",
}

func foldLanguage(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if folded, ok := languageFold[key]; ok {
		return folded
	}
	return strings.TrimSpace(raw)
}

// computeFacets summarizes the surviving results: language distribution
// sorted by frequency and the min/max over parseable years. Run after
// type filtering so the facets describe what the caller actually sees.
func computeFacets(set *core.ResultSet) core.Facets {
	var facets core.Facets

	languages := make(map[string]int)
	for _, r := range set.All() {
		if r.Language != "" {
			languages[foldLanguage(r.Language)]++
		}
		if year, ok := r.ParsedYear(); ok {
			if facets.YearMin == nil || year < *facets.YearMin {
				y := year
				facets.YearMin = &y
			}
			if facets.YearMax == nil || year > *facets.YearMax {
				y := year
				facets.YearMax = &y
			}
		}
	}

	for code, count := range languages {
		facets.Languages = append(facets.Languages, core.LanguageCount{Code: code, Count: count})
	}
	sort.Slice(facets.Languages, func(i, j int) bool {
		if facets.Languages[i].Count != facets.Languages[j].Count {
			return facets.Languages[i].Count > facets.Languages[j].Count
		}
		return facets.Languages[i].Code < facets.Languages[j].Code
	})

	return facets
}
