package core

import "strings"

// PublicationType restricts a name search to one association class.
// The values match the catalog wire format.
type PublicationType string

const (
	// PubMonograph keeps only the monograph tiers (1 and 2).
	PubMonograph PublicationType = "monografia"
	// PubCollective keeps only the collective tier (3).
	PubCollective PublicationType = "collettiva"
	// PubAuthor keeps only the as-author tier (4).
	PubAuthor PublicationType = "autore"
)

// publicationAliases maps classifier and caller spellings onto the
// canonical publication types. The classifier answers in Italian but
// callers of the direct API may use the English terms.
var publicationAliases = map[string]PublicationType{
	"monografia": PubMonograph,
	"monograph":  PubMonograph,
	"monografie": PubMonograph,
	"collettiva": PubCollective,
	"collective": PubCollective,
	"collettive": PubCollective,
	"autore":     PubAuthor,
	"author":     PubAuthor,
}

// NormalizePublicationType resolves a free-text publication type to its
// canonical value. Returns false for unrecognized input.
func NormalizePublicationType(raw string) (PublicationType, bool) {
	t, ok := publicationAliases[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

// FilterSet narrows a name or theme search. The zero value of each field
// means unconstrained. Filters never alter tier membership logic, they
// only narrow each tier.
type FilterSet struct {
	Language string          `json:"lingua,omitempty"`
	YearMin  int             `json:"anno_min,omitempty"`
	YearMax  int             `json:"anno_max,omitempty"`
	Type     PublicationType `json:"tipo_pubblicazione,omitempty"`
}

// IsZero reports whether no filter is set.
func (f FilterSet) IsZero() bool {
	return f.Language == "" && f.YearMin == 0 && f.YearMax == 0 && f.Type == ""
}

// Merge fills unset fields from a prior turn's filters. Fields present in
// the receiver win; this is the follow-up refinement rule.
func (f FilterSet) Merge(prior FilterSet) FilterSet {
	if f.Language == "" {
		f.Language = prior.Language
	}
	if f.YearMin == 0 {
		f.YearMin = prior.YearMin
	}
	if f.YearMax == 0 {
		f.YearMax = prior.YearMax
	}
	if f.Type == "" {
		f.Type = prior.Type
	}
	return f
}

// LanguageCount is one entry of the language facet.
type LanguageCount struct {
	Code  string `json:"codice"`
	Count int    `json:"conteggio"`
}

// Facets summarize a name-search result set for UI refinement.
// YearMin/YearMax are nil when no surviving result has a parseable year.
type Facets struct {
	Languages []LanguageCount `json:"lingue"`
	YearMin   *int            `json:"anno_min"`
	YearMax   *int            `json:"anno_max"`
}
